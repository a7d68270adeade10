package editor

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ledgerbook/internal/common"
)

// ErrValidation is matched by every local input error.
var ErrValidation = common.ErrorValidation

var (
	ErrAmountNotDigits   = fmt.Errorf("%w: amount must contain digits only", ErrValidation)
	ErrAmountTooLarge    = fmt.Errorf("%w: amount is too large", ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: date must be YYYY-MM-DDTHH:mm", ErrValidation)
	ErrUnknownCode       = fmt.Errorf("%w: unknown code", ErrValidation)
	ErrUnknownInstrument = fmt.Errorf("%w: unknown instrument", ErrValidation)
	ErrDeleteDeclined    = fmt.Errorf("%w: delete not confirmed", ErrValidation)
)

var (
	ErrNotOpen   = errors.New("editor is not open")
	ErrWrongMode = errors.New("operation not available in this mode")
)
