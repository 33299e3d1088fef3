package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		places int32
		want   string
	}{
		{"no rounding needed", "10.25", 2, "10.25"},
		{"round down", "10.254", 2, "10.25"},
		{"round up", "10.256", 2, "10.26"},
		{"tie goes up", "10.255", 2, "10.26"},
		{"tie at half cent", "0.005", 2, "0.01"},
		{"negative tie goes toward positive", "-0.005", 2, "0"},
		{"negative round", "-10.256", 2, "-10.26"},
		{"zero places", "2.5", 0, "3"},
		{"zero", "0", 2, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.input)
			got := RoundHalfUp(d, tt.places)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RoundHalfUp(%s, %d) = %s, want %s", tt.input, tt.places, got, tt.want)
		})
	}
}

func TestRoundAmount(t *testing.T) {
	// 33.335 * 7.5% = 2.5001... style cases come up constantly in tax math
	base := decimal.RequireFromString("33.335")
	rate := decimal.RequireFromString("7.5")
	tax := RoundAmount(base.Mul(rate).Div(decimal.NewFromInt(100)))
	assert.True(t, tax.Equal(decimal.RequireFromString("2.50")), "got %s", tax)

	tie := decimal.RequireFromString("2.005")
	assert.True(t, RoundAmount(tie).Equal(decimal.RequireFromString("2.01")))
}
