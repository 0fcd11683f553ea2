package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ColumnSpec
	}{
		{
			name:     "trims and keeps order",
			input:    " First Name, Last Name ,Email",
			expected: ColumnSpec{"First Name", "Last Name", "Email"},
		},
		{
			name:     "drops blanks",
			input:    "First Name,, ,Email,",
			expected: ColumnSpec{"First Name", "Email"},
		},
		{
			name:     "drops duplicates",
			input:    "Email, First Name, Email",
			expected: ColumnSpec{"Email", "First Name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := ParseColumnSpec(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cols)
		})
	}
}

func TestParseColumnSpec_Empty(t *testing.T) {
	_, err := ParseColumnSpec(" , ,")
	assert.ErrorIs(t, err, ErrEmptyColumnSpec)
}

func TestColumnSpec_Validate(t *testing.T) {
	assert.NoError(t, ColumnSpec{"A"}.Validate())
	assert.ErrorIs(t, ColumnSpec{}.Validate(), ErrEmptyColumnSpec)
	assert.ErrorIs(t, ColumnSpec{"A", " "}.Validate(), ErrEmptyColumnSpec)
}

func TestColumnSpec_Joined(t *testing.T) {
	assert.Equal(t, "First Name, Email", ColumnSpec{"First Name", "Email"}.Joined())
	assert.True(t, ColumnSpec{"First Name", "Email"}.Contains("Email"))
	assert.False(t, ColumnSpec{"First Name"}.Contains("Email"))
}
