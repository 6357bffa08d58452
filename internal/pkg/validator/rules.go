package validator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Required records "<label> is required" when value is blank.
func (v *ValidationErrors) Required(field, label, value string) bool {
	if IsEmpty(value) {
		v.Add(field, label+" is required")
		return false
	}
	return true
}

// Email checks a required address.
func (v *ValidationErrors) Email(field string, value string) {
	if !v.Required(field, "Email", value) {
		return
	}
	if !IsValidEmail(value) {
		v.Add(field, "Invalid email format")
	}
}

// IntBetween parses a required whole number and checks min <= n <= max.
func (v *ValidationErrors) IntBetween(field, label string, value FormValue, min, max int) (int, bool) {
	if !v.Required(field, label, string(value)) {
		return 0, false
	}
	n, ok := value.Int()
	if !ok {
		v.Add(field, label+" must be a whole number")
		return 0, false
	}
	if n < min || n > max {
		v.Add(field, fmt.Sprintf("%s must be between %d and %d", label, min, max))
		return n, false
	}
	return n, true
}

// DecimalBetween parses a required number and checks min <= d <= max.
func (v *ValidationErrors) DecimalBetween(field, label string, value FormValue, min, max decimal.Decimal) (decimal.Decimal, bool) {
	if !v.Required(field, label, string(value)) {
		return decimal.Zero, false
	}
	d, ok := value.Decimal()
	if !ok {
		v.Add(field, label+" must be a number")
		return decimal.Zero, false
	}
	if d.LessThan(min) || d.GreaterThan(max) {
		v.Add(field, fmt.Sprintf("%s must be between %s and %s", label, min.String(), max.String()))
		return d, false
	}
	return d, true
}

// RequiredID parses a required positive identifier.
func (v *ValidationErrors) RequiredID(field, label string, value FormValue) (int64, bool) {
	if !v.Required(field, label, string(value)) {
		return 0, false
	}
	id, ok := value.ID()
	if !ok {
		v.Add(field, label+" is invalid")
		return 0, false
	}
	return id, true
}

// RequiredDate parses a required YYYY-MM-DD date.
func (v *ValidationErrors) RequiredDate(field, label, value string) (time.Time, bool) {
	if !v.Required(field, label, value) {
		return time.Time{}, false
	}
	return v.OptionalDate(field, label, value)
}

// OptionalDate parses a YYYY-MM-DD date when present. Blank yields the zero time and true.
func (v *ValidationErrors) OptionalDate(field, label, value string) (time.Time, bool) {
	if IsEmpty(value) {
		return time.Time{}, true
	}
	d, ok := IsValidDate(value)
	if !ok {
		v.Add(field, label+" must be a valid date (YYYY-MM-DD)")
		return time.Time{}, false
	}
	return d, true
}

// NotBefore checks that end, when set, does not precede start.
func (v *ValidationErrors) NotBefore(field, label string, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(field, label+" must not be before the start date")
	}
}
