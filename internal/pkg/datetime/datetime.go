package datetime

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

var parseLayouts = []string{
	DateLayout,
	DateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// Time is a time.Time that speaks the API's wire format: a plain date when there is no
// clock part, a zone-less timestamp otherwise.
type Time struct {
	time.Time
}

// New wraps t.
func New(t time.Time) Time {
	return Time{Time: t}
}

// Ptr wraps a nullable time.
func Ptr(t *time.Time) *Time {
	if t == nil {
		return nil
	}
	return &Time{Time: *t}
}

// Std unwraps a nullable Time, used when binding query arguments.
func Std(t *Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// Parse accepts any of the layouts the API has historically produced.
func Parse(value string) (Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Time{Time: t}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid date %q", value)
}

// IsDateOnly reports whether t has no clock component.
func (t Time) IsDateOnly() bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func (t Time) String() string {
	if t.IsDateOnly() {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}

// Format renders a nullable Time, or "" when it is nil.
func Format(t *Time) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

// MonthStart truncates t to the first instant of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
