package validator

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keeps the first message reported for each field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, exists := result[err.Field]; !exists {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Has reports whether field already carries an error.
func (v ValidationErrors) Has(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Rename moves errors onto other field names, for rule sets shared between forms. Fields
// missing from names keep their name.
func (v ValidationErrors) Rename(names map[string]string) ValidationErrors {
	out := make(ValidationErrors, len(v))
	for i, err := range v {
		if name, ok := names[err.Field]; ok {
			err.Field = name
		}
		out[i] = err
	}
	return out
}

// Err returns nil when there are no errors so callers can return it directly.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	return date, err == nil
}

// FormValue is a raw form input. Clients send numbers either as JSON numbers or strings;
// both land here as text so that parsing is always an explicit step.
type FormValue string

func (f *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = FormValue(s)
		return nil
	}
	*f = FormValue(data)
	return nil
}

func (f FormValue) String() string {
	return strings.TrimSpace(string(f))
}

// IsEmpty reports whether the value is blank.
func (f FormValue) IsEmpty() bool {
	return IsEmpty(string(f))
}

// IDValue renders a nullable identifier the way a form sends it.
func IDValue(id *int64) FormValue {
	if id == nil {
		return ""
	}
	return FormValue(strconv.FormatInt(*id, 10))
}

// IntValue renders a nullable number the way a form sends it.
func IntValue(n *int) FormValue {
	if n == nil {
		return ""
	}
	return FormValue(strconv.Itoa(*n))
}

// Overlay copies *src into *dst when src is set. Update requests leave unsent fields nil.
func Overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Int parses a whole number.
func (f FormValue) Int() (int, bool) {
	n, err := strconv.Atoi(f.String())
	return n, err == nil
}

// ID parses a positive identifier.
func (f FormValue) ID() (int64, bool) {
	n, err := strconv.ParseInt(f.String(), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Decimal parses a decimal number.
func (f FormValue) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(f.String())
	return d, err == nil
}
