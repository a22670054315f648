package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student roll numbers: year + 3-digit course number + 4-digit serial
	StudentRollNumberPattern = `^\d{4}\d{3}\d{4}$`

	// Staff roll numbers: year + 3-digit department number + type letter + 4-digit serial
	StaffRollNumberPattern = `^\d{4}\d{3}[AFT]\d{4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email             *regexp.Regexp
	StudentRollNumber *regexp.Regexp
	StaffRollNumber   *regexp.Regexp
}{
	Email:             regexp.MustCompile(EmailPattern),
	StudentRollNumber: regexp.MustCompile(StudentRollNumberPattern),
	StaffRollNumber:   regexp.MustCompile(StaffRollNumberPattern),
}

// IsValidRollNumber reports whether s matches either issued roll number shape.
func IsValidRollNumber(s string) bool {
	return CompiledPatterns.StudentRollNumber.MatchString(s) ||
		CompiledPatterns.StaffRollNumber.MatchString(s)
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	// Check if required
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	// Check min length
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	// Check max length
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	// Check pattern
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
