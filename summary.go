package coinfolio

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AssetPosition is the performance of one asset.
type AssetPosition struct {
	Symbol    string
	Deposited Money    // cost basis: executed value of the asset's orders
	Quantity  Quantity // available quantity
	Price     Money    // last price in the quote currency
	Value     Money    // Quantity * Price
	Profit    Money    // Value - Deposited
	Gain      Percent  // Profit / Deposited

	// NoCostBasis is set when Deposited is zero (e.g the asset was
	// transferred in). Gain is then reported as 100%: it is a display rule,
	// not a computed return.
	NoCostBasis bool
	// PriceMissing is set when no market price could be found, the asset is
	// then valued at zero.
	PriceMissing bool
}

// Totals aggregates all the positions of a summary.
type Totals struct {
	Deposited   Money
	Value       Money
	Profit      Money
	Gain        Percent
	NoCostBasis bool
}

// Summary is the portfolio performance per asset.
type Summary struct {
	Quote     string
	Positions []AssetPosition // sorted by symbol
	Total     Totals
	// Warnings lists the items that were skipped or degraded, and why.
	Warnings []Warning
}

// gain computes profit/deposited, using the 100% rule for a zero cost basis.
func gain(profit, deposited Money) (Percent, bool) {
	if deposited.IsZero() {
		return fullGain, true
	}
	return profit.Ratio(deposited), false
}

// newAssetPosition computes the derived values of a position.
func newAssetPosition(symbol string, deposited Money, quantity Quantity, price Money) AssetPosition {
	value := quantity.Price(price)
	profit := value.Sub(deposited)
	g, noBasis := gain(profit, deposited)
	return AssetPosition{
		Symbol:      symbol,
		Deposited:   deposited,
		Quantity:    quantity,
		Price:       price,
		Value:       value,
		Profit:      profit,
		Gain:        g,
		NoCostBasis: noBasis,
	}
}

// sumPositions computes the exact totals of positions.
func sumPositions(positions []AssetPosition, quote string) Totals {
	t := Totals{Deposited: M(0, quote), Value: M(0, quote), Profit: M(0, quote)}
	for _, p := range positions {
		t.Deposited = t.Deposited.Add(p.Deposited)
		t.Value = t.Value.Add(p.Value)
		t.Profit = t.Profit.Add(p.Profit)
	}
	t.Gain, t.NoCostBasis = gain(t.Profit, t.Deposited)
	return t
}

// BuildSummary combines the orders, the live account quantities and the last
// market prices into a per-asset summary.
//
// Configuration and authentication failures abort the build. Any other failure
// on a single order, account or price degrades that item only, and is
// reported in Summary.Warnings.
func BuildSummary(ctx context.Context, f Fetcher, accounts Accounts, orderIDs []string, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	log := zerolog.Ctx(ctx)
	s := &Summary{Quote: o.quote}

	// cost basis per base currency.
	orders, warnings, err := resolveOrders(ctx, f, orderIDs, o)
	if err != nil {
		return nil, err
	}
	s.Warnings = append(s.Warnings, warnings...)

	deposits := make(map[string]decimal.Decimal)
	for _, order := range orders {
		base := order.BaseCurrency()
		v := order.ExecutedValue
		if o.netSells && order.Side == Sell {
			v = v.Neg()
		}
		deposits[base] = deposits[base].Add(v)
	}
	// assets held without any order (e.g transferred in).
	for symbol := range accounts {
		if _, exists := deposits[symbol]; !exists {
			deposits[symbol] = decimal.Zero
		}
	}
	delete(deposits, o.quote) // cash is not a position

	symbols := make([]string, 0, len(deposits))
	for symbol := range deposits {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)

	// live quantities.
	quantities := make([]decimal.Decimal, len(symbols))
	errs, err := fanOut(ctx, o.concurrency, len(symbols), func(ctx context.Context, i int) error {
		acc, held := accounts[symbols[i]]
		if !held {
			return nil // no longer held, quantity is zero.
		}
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
			s.Warnings = append(s.Warnings, newWarning(symbols[i], fmt.Errorf("using discovery balance: %w", err)))
		}
	}

	// last prices.
	prices, missing, warnings, err := lastPrices(ctx, f, symbols, o)
	if err != nil {
		return nil, err
	}
	s.Warnings = append(s.Warnings, warnings...)

	for i, symbol := range symbols {
		p := newAssetPosition(symbol, M(deposits[symbol], o.quote), Q(quantities[i]), M(prices[i], o.quote))
		p.PriceMissing = missing[i]
		s.Positions = append(s.Positions, p)
	}
	s.Total = sumPositions(s.Positions, o.quote)

	log.Debug().Int("positions", len(s.Positions)).Int("warnings", len(s.Warnings)).Msg("summary built")
	return s, nil
}

// lastPrices fetches the last price of every symbol against the quote
// currency. Prices are indexed like symbols; missing ones are zero.
func lastPrices(ctx context.Context, f Fetcher, symbols []string, o options) (prices []decimal.Decimal, missing []bool, warnings []Warning, err error) {
	prices = make([]decimal.Decimal, len(symbols))
	missing = make([]bool, len(symbols))
	if len(symbols) == 0 {
		return prices, missing, nil, nil
	}

	products, err := ListProducts(ctx, f)
	if IsFatal(err) {
		return nil, nil, nil, err
	}
	if err != nil {
		// without the product list, there is no market to price.
		for i, symbol := range symbols {
			missing[i] = true
			warnings = append(warnings, newWarning(symbol, err))
		}
		return prices, missing, warnings, nil
	}
	markets := Markets(products, symbols, o.quote)

	errs, err := fanOut(ctx, o.concurrency, len(symbols), func(ctx context.Context, i int) error {
		productID, ok := markets[symbols[i]]
		if !ok {
			return &Error{Kind: KindDataShape, Op: "price", Subject: symbols[i], Err: fmt.Errorf("no %s market", o.quote)}
		}
		price, err := LastPrice(ctx, f, productID)
		prices[i] = price
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}
	for i, err := range errs {
		if err != nil {
			prices[i] = decimal.Zero
			missing[i] = true
			warnings = append(warnings, newWarning(symbols[i], err))
		}
	}
	return prices, missing, warnings, nil
}
