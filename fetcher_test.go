package coinfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fakeExchange serves canned JSON responses per endpoint.
type fakeExchange struct {
	responses map[string]string // endpoint -> raw JSON
	failures  map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func newFakeExchange(responses map[string]string) *fakeExchange {
	return &fakeExchange{responses: responses, failures: make(map[string]error), calls: make(map[string]int)}
}

func (f *fakeExchange) fail(endpoint string, err error) *fakeExchange {
	f.failures[endpoint] = err
	return f
}

func (f *fakeExchange) Get(ctx context.Context, endpoint string, v any) error {
	f.mu.Lock()
	f.calls[endpoint]++
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := f.failures[endpoint]; ok {
		return err
	}
	raw, ok := f.responses[endpoint]
	if !ok {
		return Ef(KindDataShape, "GET "+endpoint, "404 Not Found: NotFound")
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return E(KindDataShape, "GET "+endpoint, err)
	}
	return nil
}

func (f *fakeExchange) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

// orderID returns a deterministic valid order id.
func orderID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

func orderJSON(n int, side, product, executedValue string) string {
	return fmt.Sprintf(`{"id":%q,"side":%q,"product_id":%q,"executed_value":%q,"filled_size":"1","status":"done","done_at":"2021-02-%02dT10:00:00Z"}`,
		orderID(n), side, product, executedValue, n)
}

func ledgerJSON(orderNumbers ...int) string {
	var entries []string
	for i, n := range orderNumbers {
		if n == 0 {
			entries = append(entries, fmt.Sprintf(`{"id":"e%d","type":"transfer","amount":"1","details":{}}`, i))
			continue
		}
		entries = append(entries, fmt.Sprintf(`{"id":"e%d","type":"match","amount":"1","details":{"order_id":%q,"product_id":"ETH-USD"}}`, i, orderID(n)))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got)
}

func assertMoney(t *testing.T, want string, got Money) {
	t.Helper()
	assertDecimal(t, want, got.Decimal())
}
