package coinfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBalanceReport(t *testing.T) {
	f := summaryExchange()
	f.responses["accounts/acc-btc"] = `{"id":"acc-btc","currency":"BTC","balance":"0.02","available":"0.015","hold":"0.005"}`

	r, err := NewBalanceReport(context.Background(), f, summaryAccounts())
	require.NoError(t, err)

	require.Len(t, r.Holdings, 3)
	assert.Equal(t, []string{"ETH", "BTC", "USD"}, []string{r.Holdings[0].Symbol, r.Holdings[1].Symbol, r.Holdings[2].Symbol})

	assertMoney(t, "350", r.Holdings[0].Value)
	// the live available quantity is used.
	assertDecimal(t, "0.015", r.Holdings[1].Quantity.Decimal())
	assertMoney(t, "90", r.Holdings[1].Value)
	// cash is valued at par, without a market lookup.
	assertMoney(t, "1", r.Holdings[2].Price)
	assertMoney(t, "20", r.Holdings[2].Value)
	assert.Zero(t, f.count("products/USD-USD/stats"))

	assertMoney(t, "460", r.Total)
	assert.Empty(t, r.Warnings)
}

func TestNewBalanceReport_ProductsUnavailable(t *testing.T) {
	f := summaryExchange().fail("products", Ef(KindTransient, "GET products", "502 Bad Gateway"))

	r, err := NewBalanceReport(context.Background(), f, summaryAccounts())
	require.NoError(t, err)

	for _, h := range r.Holdings {
		if h.Symbol == "USD" {
			assert.False(t, h.PriceMissing)
			continue
		}
		assert.True(t, h.PriceMissing, h.Symbol)
	}
	assertMoney(t, "20", r.Total)
	assert.Len(t, r.Warnings, 2)
}
