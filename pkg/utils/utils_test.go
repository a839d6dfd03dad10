package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 10.56, RoundWithTwoDecimalPlace(10.556))
	assert.Equal(t, 10.55, RoundWithTwoDecimalPlace(10.554))
	assert.Equal(t, -2.35, RoundWithTwoDecimalPlace(-2.346))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "100.00", FormatMoney(99.999))
	assert.Equal(t, "12.30", FormatMoney(12.3))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-01-05", "2024-01-05", true},
		{"2024/01/05", "2024-01-05", true},
		{"01/05/2024", "2024-01-05", true},
		{"2024-01-05 10:30:00", "2024-01-05", true},
		{"Jan 5, 2024", "2024-01-05", true},
		{"not-a-date", "", false},
		{"", "", false},
		{"2024-13-40", "", false},
	}

	for _, tt := range tests {
		date, err := ParseDate(tt.input)
		if !tt.ok {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, date.Format(time.DateOnly), tt.input)
	}
}

func TestGenerateOrderID(t *testing.T) {
	id, err := GenerateOrderID()
	require.NoError(t, err)
	assert.Len(t, id, 8)
}

func TestToJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{}", ToJSON(func() {}))
}
