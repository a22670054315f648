package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRollNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "student number", in: "20250700001", want: true},
		{name: "staff admin number", in: "2025248A0001", want: true},
		{name: "staff faculty number", in: "2025113F0042", want: true},
		{name: "staff teacher number", in: "2025157T9999", want: true},
		{name: "empty", in: "", want: false},
		{name: "too short", in: "2025070001", want: false},
		{name: "student number with letter", in: "2025070A001", want: false},
		{name: "staff number with unknown letter", in: "2025248X0001", want: false},
		{name: "staff number with lowercase letter", in: "2025248a0001", want: false},
		{name: "trailing garbage", in: "20250700001x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRollNumber(tt.in))
		})
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("Ada").WithMinLength(2).WithMaxLength(100).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("a").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("not-a-roll-number").WithPattern(CompiledPatterns.StudentRollNumber).Validate())
}
