package coinfolio

import (
	"context"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// Fetcher performs an authenticated GET on the exchange API and decodes the
// JSON response into v.
//
// endpoint is relative to the API root, e.g "accounts" or "orders/<id>".
// Implementations classify their errors with the Kind taxonomy, so that
// callers can tell fatal failures from degraded items.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, v any) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, endpoint string, v any) error

func (f FetcherFunc) Get(ctx context.Context, endpoint string, v any) error { return f(ctx, endpoint, v) }

// Account is a currency account held on the exchange.
type Account struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Available decimal.Decimal `json:"available"`
	Hold      decimal.Decimal `json:"hold"`
}

// LedgerEntry is a single account event. Only trades carry an order id.
type LedgerEntry struct {
	ID        string          `json:"id"`
	AccountID string          `json:"-"`
	Type      string          `json:"type"` // match, fee, transfer, conversion...
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	Details   struct {
		OrderID   optional.Option[string] `json:"order_id"`
		TradeID   optional.Option[string] `json:"trade_id"`
		ProductID optional.Option[string] `json:"product_id"`
	} `json:"details"`
}

// Side of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Order is the exchange's record of a completed order.
type Order struct {
	ID            string
	Side          Side
	ProductID     string // e.g "ETH-USD"
	Funds         decimal.Decimal
	ExecutedValue decimal.Decimal // in quote currency
	FilledSize    decimal.Decimal
	FillFees      decimal.Decimal
	Status        string
	DoneAt        time.Time
}

// BaseCurrency returns the asset side of the order's product, e.g "ETH" for "ETH-USD".
func (o Order) BaseCurrency() string { return BaseCurrency(o.ProductID) }

// QuoteCurrency returns the money side of the order's product, e.g "USD" for "ETH-USD".
func (o Order) QuoteCurrency() string {
	_, quote, _ := strings.Cut(o.ProductID, "-")
	return quote
}

// BaseCurrency returns the symbol left of the product separator.
func BaseCurrency(productID string) string {
	base, _, _ := strings.Cut(productID, "-")
	return base
}

// Product is a trading pair.
type Product struct {
	ID            string `json:"id"`
	BaseCurrency  string `json:"base_currency"`
	QuoteCurrency string `json:"quote_currency"`
	Status        string `json:"status"`
}
