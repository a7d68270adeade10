package models

// PaymentType is the wire code of a payment method.
type PaymentType string

const (
	PaymentTypeCard     PaymentType = "CARD"
	PaymentTypeTransfer PaymentType = "TRANSFER"
	PaymentTypeCash     PaymentType = "CASH"
	PaymentTypeOther    PaymentType = "ETC"
)

// PaymentMethod is a closed union: Cash, Transfer, Card or Other.
// Only Card can carry an instrument, so switching to another variant drops it.
type PaymentMethod interface {
	PaymentType() PaymentType
	instrument() *int64
}

type Cash struct{}

func (Cash) PaymentType() PaymentType { return PaymentTypeCash }
func (Cash) instrument() *int64       { return nil }

type Transfer struct{}

func (Transfer) PaymentType() PaymentType { return PaymentTypeTransfer }
func (Transfer) instrument() *int64       { return nil }

// Other covers ETC and any code this client does not know about.
type Other struct {
	Code PaymentType
}

func (o Other) PaymentType() PaymentType {
	if o.Code == "" {
		return PaymentTypeOther
	}
	return o.Code
}
func (Other) instrument() *int64 { return nil }

// Card is paid with an instrument; InstrumentID may still be nil when the user
// did not pick one.
type Card struct {
	InstrumentID *int64
}

func (Card) PaymentType() PaymentType { return PaymentTypeCard }
func (c Card) instrument() *int64     { return c.InstrumentID }

// MethodOf builds the union from wire fields. An empty code yields nil.
func MethodOf(code PaymentType, instrumentID *int64) PaymentMethod {
	switch code {
	case "":
		return nil
	case PaymentTypeCard:
		return Card{InstrumentID: cloneID(instrumentID)}
	case PaymentTypeCash:
		return Cash{}
	case PaymentTypeTransfer:
		return Transfer{}
	default:
		return Other{Code: code}
	}
}

// RequiresInstrument reports whether code is the instrument-bearing one.
func RequiresInstrument(code PaymentType) bool {
	return code == PaymentTypeCard
}
