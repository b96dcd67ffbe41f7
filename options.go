package coinfolio

import (
	"github.com/rs/zerolog"
)

// DefaultQuote is the currency positions are valued in.
const DefaultQuote = "USD"

type options struct {
	concurrency int
	quote       string
	netSells    bool
	log         zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		concurrency: DefaultConcurrency,
		quote:       DefaultQuote,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Session or a report.
type Option func(*options)

// WithConcurrency caps the number of concurrent requests of a fan-out.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithQuote sets the quote currency. It is cash: it is excluded from the
// summary positions and assets are priced against it.
func WithQuote(symbol string) Option {
	return func(o *options) {
		if symbol != "" {
			o.quote = symbol
		}
	}
}

// WithNetSells makes sell orders reduce the deposited total instead of adding
// to it.
func WithNetSells(net bool) Option {
	return func(o *options) { o.netSells = net }
}

// WithLogger sets the session logger. Reports log through the logger attached
// to their context (zerolog.Ctx).
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}
