package coinfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ListProducts fetches the trading pairs available on the exchange.
func ListProducts(ctx context.Context, f Fetcher) ([]Product, error) {
	var products []Product
	if err := f.Get(ctx, "products", &products); err != nil {
		return nil, fmt.Errorf("cannot list products: %w", err)
	}
	return products, nil
}

// Markets returns, for each symbol, the id of the product trading it against
// quote, e.g "ETH" -> "ETH-USD".
//
// Only exact quote currencies match: "ETH-USDC" is not a USD market.
func Markets(products []Product, symbols []string, quote string) map[string]string {
	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}
	markets := make(map[string]string)
	for _, p := range products {
		if !wanted[p.BaseCurrency] || p.QuoteCurrency != quote {
			continue
		}
		if _, exists := markets[p.BaseCurrency]; exists {
			continue
		}
		markets[p.BaseCurrency] = p.ID
	}
	return markets
}

const lastPricePath = "$.last"

// LastPrice returns the last traded price of a product, from its 24h stats.
//
// The exchange reports prices as strings, but numbers are accepted too.
func LastPrice(ctx context.Context, f Fetcher, productID string) (decimal.Decimal, error) {
	var stats any
	if err := f.Get(ctx, "products/"+productID+"/stats", &stats); err != nil {
		return decimal.Zero, err
	}
	shapeErr := func(format string, args ...any) error {
		return &Error{Kind: KindDataShape, Op: "GET products/stats", Subject: productID, Err: fmt.Errorf(format, args...)}
	}

	jval, err := jsonpath.Get(lastPricePath, stats)
	if err != nil {
		return decimal.Zero, shapeErr("cannot read %q: %w", lastPricePath, err)
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case string:
		price, err = decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, shapeErr("invalid last price %q: %w", v, err)
		}
	case float64:
		price = decimal.NewFromFloat(v)
	case json.Number:
		price, err = decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, shapeErr("invalid last price %q: %w", v, err)
		}
	default:
		return decimal.Zero, shapeErr("last price is neither a string nor a number: %v", jval)
	}
	if !price.IsPositive() {
		return decimal.Zero, shapeErr("no last price (%v)", price)
	}
	return price, nil
}
