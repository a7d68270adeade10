package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MinuteLayout is the editing and wire layout for record timestamps.
	MinuteLayout = "2006-01-02T15:04"
	// SecondLayout is what the backend may send back.
	SecondLayout = "2006-01-02T15:04:05"
	// DateLayout is accepted for filter boundaries only.
	DateLayout = "2006-01-02"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

var acceptedLayouts = []string{
	MinuteLayout,
	SecondLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// LocalDateTime is a wall-clock timestamp without zone information.
// It always lives in time.Local.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime re-reads t's wall clock in time.Local.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)}
}

// ParseLocal parses a date-and-time string. Zone offsets are accepted
// (RFC 3339) and converted to local time; a date without time is rejected.
func ParseLocal(s string) (LocalDateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return LocalDateTime{Time: t}, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return LocalDateTime{Time: t.In(time.Local)}, nil
	}
	return LocalDateTime{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Minute returns the value truncated to minute precision.
func (t LocalDateTime) Minute() LocalDateTime {
	return LocalDateTime{Time: t.Truncate(time.Minute)}
}

// Display formats the value the way the editor shows it.
func (t LocalDateTime) Display() string {
	return t.Format(MinuteLayout)
}

// String keeps seconds only when they are present.
func (t LocalDateTime) String() string {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return t.Format(SecondLayout)
	}
	return t.Format(MinuteLayout)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLocal(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
