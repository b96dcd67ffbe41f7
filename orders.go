package coinfolio

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ResolveOrderIDs walks the ledger of every account and returns the distinct
// ids of the orders that produced ledger entries.
//
// Ids appear once, in the order they are first met: accounts in symbol order,
// then ledger order within an account. Entries without an order id (deposits,
// withdrawals, fees...) are skipped. A ledger that cannot be fetched is
// skipped and logged unless the failure is fatal.
func ResolveOrderIDs(ctx context.Context, f Fetcher, accounts Accounts, opts ...Option) ([]string, error) {
	ids, warnings, err := resolveOrderIDs(ctx, f, accounts, newOptions(opts))
	for _, w := range warnings {
		zerolog.Ctx(ctx).Warn().Str("subject", w.Subject).Msg(w.Reason)
	}
	return ids, err
}

func resolveOrderIDs(ctx context.Context, f Fetcher, accounts Accounts, o options) ([]string, []Warning, error) {
	symbols := accounts.Symbols()
	ledgers := make([][]LedgerEntry, len(symbols))

	errs, err := fanOut(ctx, o.concurrency, len(symbols), func(ctx context.Context, i int) error {
		entries, err := Ledger(ctx, f, accounts[symbols[i]].ID)
		ledgers[i] = entries
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	var ids []string
	seen := make(map[string]bool)
	for i, entries := range ledgers {
		if errs[i] != nil {
			warnings = append(warnings, newWarning(symbols[i], errs[i]))
			continue
		}
		for _, e := range entries {
			if e.Details.OrderID.IsNone() {
				continue
			}
			id := e.Details.OrderID.Unwrap()
			if _, err := uuid.Parse(id); err != nil {
				zerolog.Ctx(ctx).Debug().Str("entry", e.ID).Str("order_id", id).Msg("order id is not a uuid")
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, warnings, nil
}

// Ledger fetches the ledger of an account, in the order returned by the exchange.
func Ledger(ctx context.Context, f Fetcher, accountID string) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	if err := f.Get(ctx, "accounts/"+accountID+"/ledger", &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].AccountID = accountID
	}
	return entries, nil
}

// orderPayload is the exchange representation of an order.
type orderPayload struct {
	ID            string                           `json:"id"`
	Side          Side                             `json:"side"`
	ProductID     string                           `json:"product_id"`
	Funds         decimal.Decimal                  `json:"funds"`
	ExecutedValue optional.Option[decimal.Decimal] `json:"executed_value"`
	FilledSize    decimal.Decimal                  `json:"filled_size"`
	FillFees      decimal.Decimal                  `json:"fill_fees"`
	Status        string                           `json:"status"`
	DoneAt        time.Time                        `json:"done_at"`
}

// ResolveOrder fetches the detail of an order.
func ResolveOrder(ctx context.Context, f Fetcher, id string) (Order, error) {
	var p orderPayload
	if err := f.Get(ctx, "orders/"+id, &p); err != nil {
		return Order{}, err
	}
	shapeErr := func(format string, args ...any) error {
		return &Error{Kind: KindDataShape, Op: "GET orders", Subject: id, Err: fmt.Errorf(format, args...)}
	}
	if p.ProductID == "" {
		return Order{}, shapeErr("missing product_id")
	}
	if p.ExecutedValue.IsNone() {
		return Order{}, shapeErr("missing executed_value")
	}
	switch p.Side {
	case Buy, Sell:
	default:
		return Order{}, shapeErr("unknown side %q", p.Side)
	}
	if p.ID == "" {
		p.ID = id
	}
	return Order{
		ID:            p.ID,
		Side:          p.Side,
		ProductID:     p.ProductID,
		Funds:         p.Funds,
		ExecutedValue: p.ExecutedValue.Unwrap(),
		FilledSize:    p.FilledSize,
		FillFees:      p.FillFees,
		Status:        p.Status,
		DoneAt:        p.DoneAt,
	}, nil
}

// resolveOrders fetches orders concurrently. The result is indexed like ids;
// orders that could not be fetched are left zero and reported as warnings.
func resolveOrders(ctx context.Context, f Fetcher, ids []string, o options) ([]Order, []Warning, error) {
	orders := make([]Order, len(ids))
	errs, err := fanOut(ctx, o.concurrency, len(ids), func(ctx context.Context, i int) error {
		order, err := ResolveOrder(ctx, f, ids[i])
		orders[i] = order
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	var warnings []Warning
	resolved := orders[:0:0]
	for i, err := range errs {
		if err != nil {
			warnings = append(warnings, newWarning("order "+ids[i], err))
			continue
		}
		resolved = append(resolved, orders[i])
	}
	return resolved, warnings, nil
}

// OrderHistory lists the resolved orders by completion date.
type OrderHistory struct {
	Quote    string
	Orders   []Order
	Total    Money // sum of executed values of the orders quoted in Quote
	Warnings []Warning
}

// NewOrderHistory fetches every order in ids and sorts them by completion date.
func NewOrderHistory(ctx context.Context, f Fetcher, ids []string, opts ...Option) (*OrderHistory, error) {
	o := newOptions(opts)
	orders, warnings, err := resolveOrders(ctx, f, ids, o)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(orders, func(a, b Order) int { return a.DoneAt.Compare(b.DoneAt) })

	h := &OrderHistory{Quote: o.quote, Orders: orders, Total: M(0, o.quote), Warnings: warnings}
	for _, order := range orders {
		if order.QuoteCurrency() == o.quote {
			h.Total = h.Total.Add(M(order.ExecutedValue, o.quote))
		}
	}
	return h, nil
}
