package coinfolio

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/etnz/coinfolio/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const productsJSON = `[
	{"id":"ETH-USD","base_currency":"ETH","quote_currency":"USD"},
	{"id":"ETH-USDC","base_currency":"ETH","quote_currency":"USDC"},
	{"id":"BTC-USD","base_currency":"BTC","quote_currency":"USD"},
	{"id":"XRP-USD","base_currency":"XRP","quote_currency":"USD"}
]`

func TestNewAssetPosition(t *testing.T) {
	p := newAssetPosition("ETH", USD(300), Q(2), USD(200))

	assertMoney(t, "400", p.Value)
	assertMoney(t, "100", p.Profit)
	assert.Equal(t, "33.33%", p.Gain.String())
	assert.False(t, p.NoCostBasis)
}

func TestNewAssetPosition_NoCostBasis(t *testing.T) {
	p := newAssetPosition("XRP", USD(0), Q(10), USD(1))

	assertMoney(t, "10", p.Value)
	assertMoney(t, "10", p.Profit)
	assert.True(t, p.NoCostBasis)
	assert.Equal(t, "100.00%", p.Gain.String())
}

func TestNewAssetPosition_Loss(t *testing.T) {
	p := newAssetPosition("BTC", USD(100), Q(0.5), USD(150))

	assertMoney(t, "-25", p.Profit)
	assert.Equal(t, "-25.00%", p.Gain.String())
}

// Totals are exact decimal sums of the positions.
func TestSumPositions_Exact(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var positions []AssetPosition
	want := decimal.Zero
	for i := 0; i < 1000; i++ {
		deposit := decimal.New(r.Int64N(10_000_000), -int32(r.IntN(9)))
		want = want.Add(deposit)
		positions = append(positions, newAssetPosition("X", M(deposit, "USD"), Q(0), USD(1)))
	}

	got := sumPositions(positions, "USD")
	assert.True(t, want.Equal(got.Deposited.Decimal()), "want %s got %s", want, got.Deposited.Decimal())
	assert.True(t, want.Neg().Equal(got.Profit.Decimal()))
}

func summaryExchange() *fakeExchange {
	return newFakeExchange(map[string]string{
		"orders/" + orderID(1):   orderJSON(1, "buy", "ETH-USD", "200"),
		"orders/" + orderID(2):   orderJSON(2, "buy", "ETH-USD", "100"),
		"orders/" + orderID(3):   orderJSON(3, "buy", "BTC-USD", "50"),
		"accounts/acc-eth":       `{"id":"acc-eth","currency":"ETH","balance":"1","available":"1"}`,
		"accounts/acc-btc":       `{"id":"acc-btc","currency":"BTC","balance":"0.01","available":"0.01"}`,
		"accounts/acc-usd":       `{"id":"acc-usd","currency":"USD","balance":"20","available":"20"}`,
		"products":               productsJSON,
		"products/ETH-USD/stats": `{"last":"350"}`,
		"products/BTC-USD/stats": `{"last":"6000"}`,
	})
}

func summaryAccounts() Accounts {
	return Accounts{
		"ETH": {ID: "acc-eth", Currency: "ETH", Balance: decimal.NewFromInt(1), Available: decimal.NewFromInt(1)},
		"BTC": {ID: "acc-btc", Currency: "BTC", Balance: decimal.RequireFromString("0.01"), Available: decimal.RequireFromString("0.01")},
		"USD": {ID: "acc-usd", Currency: "USD", Balance: decimal.NewFromInt(20), Available: decimal.NewFromInt(20)},
	}
}

func TestBuildSummary(t *testing.T) {
	f := summaryExchange()
	ids := []string{orderID(1), orderID(2), orderID(3)}

	s, err := BuildSummary(context.Background(), f, summaryAccounts(), ids)
	require.NoError(t, err)

	require.Len(t, s.Positions, 2)
	btc, eth := s.Positions[0], s.Positions[1]

	assert.Equal(t, "BTC", btc.Symbol)
	assertMoney(t, "50", btc.Deposited)
	assertMoney(t, "60", btc.Value)
	assertMoney(t, "10", btc.Profit)
	assert.Equal(t, "20.00%", btc.Gain.String())

	assert.Equal(t, "ETH", eth.Symbol)
	assertMoney(t, "300", eth.Deposited)
	assertMoney(t, "350", eth.Value)
	assertMoney(t, "50", eth.Profit)
	assert.Equal(t, "16.67%", eth.Gain.String())

	assertMoney(t, "350", s.Total.Deposited)
	assertMoney(t, "410", s.Total.Value)
	assertMoney(t, "60", s.Total.Profit)
	assert.Equal(t, "17.14%", s.Total.Gain.String())
	assert.Empty(t, s.Warnings)

	// the USD market is used, never the USDC one.
	assert.Zero(t, f.count("products/ETH-USDC/stats"))
}

func TestBuildSummary_NetSells(t *testing.T) {
	f := summaryExchange()
	f.responses["orders/"+orderID(4)] = orderJSON(4, "sell", "ETH-USD", "120")
	ids := []string{orderID(1), orderID(2), orderID(4)}

	s, err := BuildSummary(context.Background(), f, summaryAccounts(), ids)
	require.NoError(t, err)
	assertMoney(t, "420", s.Positions[1].Deposited)

	s, err = BuildSummary(context.Background(), f, summaryAccounts(), ids, WithNetSells(true))
	require.NoError(t, err)
	assertMoney(t, "180", s.Positions[1].Deposited)
}

func TestBuildSummary_AssetWithoutOrders(t *testing.T) {
	f := summaryExchange()
	f.responses["accounts/acc-xrp"] = `{"id":"acc-xrp","currency":"XRP","balance":"10","available":"10"}`
	f.responses["products/XRP-USD/stats"] = `{"last":"1"}`
	accounts := Accounts{"XRP": {ID: "acc-xrp", Currency: "XRP", Balance: decimal.NewFromInt(10)}}

	s, err := BuildSummary(context.Background(), f, accounts, nil)
	require.NoError(t, err)

	require.Len(t, s.Positions, 1)
	xrp := s.Positions[0]
	assertMoney(t, "0", xrp.Deposited)
	assertMoney(t, "10", xrp.Value)
	assert.True(t, xrp.NoCostBasis)
	assert.Equal(t, "100.00%", xrp.Gain.String())
	assert.True(t, s.Total.NoCostBasis)
}

func TestBuildSummary_AssetNoLongerHeld(t *testing.T) {
	f := summaryExchange()

	s, err := BuildSummary(context.Background(), f, Accounts{}, []string{orderID(3)})
	require.NoError(t, err)

	require.Len(t, s.Positions, 1)
	assertMoney(t, "0", s.Positions[0].Value)
	assertMoney(t, "-50", s.Positions[0].Profit)
	assert.Equal(t, "-100.00%", s.Positions[0].Gain.String())
}

func TestBuildSummary_DegradedItems(t *testing.T) {
	f := summaryExchange()
	f.fail("products/BTC-USD/stats", Ef(KindTransient, "GET products/BTC-USD/stats", "503 Service Unavailable"))
	f.fail("accounts/acc-eth", Ef(KindTransient, "GET accounts/acc-eth", "timeout"))
	ids := []string{orderID(1), orderID(2), orderID(3), orderID(8)}

	s, err := BuildSummary(context.Background(), f, summaryAccounts(), ids)
	require.NoError(t, err)

	require.Len(t, s.Positions, 2)
	btc, eth := s.Positions[0], s.Positions[1]
	assert.True(t, btc.PriceMissing)
	assertMoney(t, "0", btc.Value)
	// discovery balance is used instead of the live one.
	assertMoney(t, "350", eth.Value)

	var subjects []string
	for _, w := range s.Warnings {
		subjects = append(subjects, w.Subject)
	}
	assert.ElementsMatch(t, []string{"order " + orderID(8), "ETH", "BTC"}, subjects)
}

func TestBuildSummary_NoMarket(t *testing.T) {
	f := summaryExchange()
	f.responses["accounts/acc-doge"] = `{"id":"acc-doge","currency":"DOGE","balance":"5","available":"5"}`
	accounts := Accounts{"DOGE": {ID: "acc-doge", Currency: "DOGE", Balance: decimal.NewFromInt(5)}}

	s, err := BuildSummary(context.Background(), f, accounts, nil)
	require.NoError(t, err)
	require.Len(t, s.Warnings, 1)
	assert.Equal(t, "DOGE", s.Warnings[0].Subject)
	assert.Contains(t, s.Warnings[0].Reason, "no USD market")
	assert.True(t, s.Positions[0].PriceMissing)
}

func TestBuildSummary_AuthenticationAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := mocks.NewMockFetcher(ctrl)
	authErr := Ef(KindAuthentication, "GET orders", "401 Unauthorized: invalid signature")

	f.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(authErr).MinTimes(1)

	s, err := BuildSummary(context.Background(), f, summaryAccounts(), []string{orderID(1), orderID(2)}, WithConcurrency(1))
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, authErr))
	assert.True(t, IsKind(err, KindAuthentication))
}

func TestBuildSummary_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildSummary(ctx, summaryExchange(), summaryAccounts(), []string{orderID(1)})
	require.ErrorIs(t, err, context.Canceled)
}
