package coinfolio

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent_String(t *testing.T) {
	tests := []struct {
		p      Percent
		want   string
		signed string
	}{
		{P(0.5), "50.00%", "+50.00%"},
		{P(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))), "33.33%", "+33.33%"},
		{P(-0.25), "-25.00%", "-25.00%"},
		{P(0), "0.00%", "-"},
		{fullGain, "100.00%", "+100.00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.String())
		assert.Equal(t, tt.signed, tt.p.SignedString())
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{USD(1234.5), "$1,234.50"},
		{USD(decimal.RequireFromString("0.005")), "$0.01"},
		{USD(-3), "-$3.00"},
		{M(10, "EUR"), "€10.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.m.String())
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	sum := USD(0.1).Add(USD(0.2))
	assertMoney(t, "0.3", sum)
	assert.True(t, sum.Equal(USD(decimal.RequireFromString("0.3"))))

	assert.Panics(t, func() { USD(1).Add(M(1, "EUR")) })
	assert.Equal(t, "50.00%", USD(1).Ratio(USD(2)).String())
}

func TestQuantity_JSON(t *testing.T) {
	var q Quantity
	require.NoError(t, json.Unmarshal([]byte(`"0.015"`), &q))
	assertDecimal(t, "0.015", q.Decimal())
	assertMoney(t, "90", q.Price(USD(6000)))
}
