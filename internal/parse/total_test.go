package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTotal_PrefersTotalOverSubtotalAndTax(t *testing.T) {
	lines := []string{"Subtotal 10.00", "Tax 1.00", "Total 11.00"}
	total := ExtractTotal(lines)
	require.NotNil(t, total)
	assert.InDelta(t, 11.00, *total, 1e-9)
}

func TestExtractTotal_KeywordWeights(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  float64
	}{
		{
			name:  "grand total beats bare total",
			lines: []string{"Total 10.00", "Grand Total 12.00"},
			want:  12.00,
		},
		{
			name:  "amount due beats bare total",
			lines: []string{"Total 10.00", "Amount Due 11.50"},
			want:  11.50,
		},
		{
			name:  "balance due recognized",
			lines: []string{"Latte 9.00", "Balance Due 9.74"},
			want:  9.74,
		},
		{
			name:  "tip line never wins",
			lines: []string{"Total 20.00", "Tip 4.00"},
			want:  20.00,
		},
		{
			name:  "change line never wins",
			lines: []string{"Total 15.00", "Change 5.00"},
			want:  15.00,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := ExtractTotal(tt.lines)
			require.NotNil(t, total)
			assert.InDelta(t, tt.want, *total, 1e-9)
		})
	}
}

func TestExtractTotal_TieBreaksByAmountThenIndex(t *testing.T) {
	// identical keyword bonus and index spacing engineered so scores tie
	lines := []string{"Total 12.00", "filler", "Total 14.00"}
	// index 0 + 50 = 50 vs index 2 + 50 = 52: later line wins outright here,
	// and it also carries the larger amount
	total := ExtractTotal(lines)
	require.NotNil(t, total)
	assert.InDelta(t, 14.00, *total, 1e-9)
}

func TestExtractTotal_BottomHalfFallback(t *testing.T) {
	// the only money line sits at index 0 with no keyword, so it scores
	// zero; the bottom-half scan still recovers its amount
	lines := []string{"19.99"}
	total := ExtractTotal(lines)
	require.NotNil(t, total)
	assert.InDelta(t, 19.99, *total, 1e-9)
}

func TestExtractTotal_BottomHalfSkipsPenaltyLines(t *testing.T) {
	// cash and tax lines are excluded from the bottom-half scan entirely
	lines := []string{"Cash 20.00", "Tax 1.00"}
	assert.Nil(t, ExtractTotal(lines))
}

func TestExtractTotal_NoMoneyLines(t *testing.T) {
	assert.Nil(t, ExtractTotal([]string{"Cafe Luna", "Thank you"}))
	assert.Nil(t, ExtractTotal(nil))
}
