package coinfolio

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Holding is the current value of one account.
type Holding struct {
	Symbol       string
	AccountID    string
	Quantity     Quantity
	Price        Money
	Value        Money
	PriceMissing bool
}

// BalanceReport values every account at its last market price.
type BalanceReport struct {
	Quote    string
	Holdings []Holding // by decreasing value
	Total    Money
	Warnings []Warning
}

// NewBalanceReport refreshes every account and values it in the quote currency.
// The quote currency account itself is valued at par.
func NewBalanceReport(ctx context.Context, f Fetcher, accounts Accounts, opts ...Option) (*BalanceReport, error) {
	o := newOptions(opts)
	r := &BalanceReport{Quote: o.quote, Total: M(0, o.quote)}

	symbols := accounts.Symbols()
	quantities := make([]decimal.Decimal, len(symbols))
	errs, err := fanOut(ctx, o.concurrency, len(symbols), func(ctx context.Context, i int) error {
		acc := accounts[symbols[i]]
		quantities[i] = acc.Available
		live, err := GetAccount(ctx, f, acc.ID)
		if err != nil {
			return err
		}
		quantities[i] = live.Available
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			r.Warnings = append(r.Warnings, newWarning(symbols[i], fmt.Errorf("using discovery balance: %w", err)))
		}
	}

	// only price non cash assets.
	var assets []string
	for _, s := range symbols {
		if s != o.quote {
			assets = append(assets, s)
		}
	}
	prices, missing, warnings, err := lastPrices(ctx, f, assets, o)
	if err != nil {
		return nil, err
	}
	r.Warnings = append(r.Warnings, warnings...)
	priceOf := make(map[string]int, len(assets))
	for i, s := range assets {
		priceOf[s] = i
	}

	for i, symbol := range symbols {
		h := Holding{Symbol: symbol, AccountID: accounts[symbol].ID, Quantity: Q(quantities[i])}
		if j, ok := priceOf[symbol]; ok {
			h.Price = M(prices[j], o.quote)
			h.PriceMissing = missing[j]
		} else {
			h.Price = M(1, o.quote)
		}
		h.Value = h.Quantity.Price(h.Price)
		r.Total = r.Total.Add(h.Value)
		r.Holdings = append(r.Holdings, h)
	}
	slices.SortStableFunc(r.Holdings, func(a, b Holding) int {
		return b.Value.Decimal().Cmp(a.Value.Decimal())
	})
	return r, nil
}
