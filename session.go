package coinfolio

import (
	"context"
	"fmt"
	"sync"
)

// Session holds the state of one CLI session: the exchange access and the
// account map discovered at login.
//
// The account map is written by Login only, and read by every report.
type Session struct {
	fetch Fetcher
	opts  []Option
	o     options

	mu       sync.RWMutex
	accounts Accounts
}

// NewSession creates a session on top of an authenticated Fetcher.
func NewSession(f Fetcher, opts ...Option) *Session {
	return &Session{fetch: f, opts: opts, o: newOptions(opts)}
}

// context attaches the session logger to ctx.
func (s *Session) context(ctx context.Context) context.Context {
	return s.o.log.WithContext(ctx)
}

// Login discovers the accounts holding a positive balance.
func (s *Session) Login(ctx context.Context) error {
	accounts, err := DiscoverAccounts(s.context(ctx), s.fetch)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()
	s.o.log.Info().Int("accounts", len(accounts)).Msg("logged in")
	return nil
}

// LoggedIn reports whether Login succeeded at least once.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts != nil
}

// Accounts returns the accounts discovered at login, logging in if needed.
func (s *Session) Accounts(ctx context.Context) (Accounts, error) {
	if !s.LoggedIn() {
		if err := s.Login(ctx); err != nil {
			return nil, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts, nil
}

// Balance values every account at its last price.
func (s *Session) Balance(ctx context.Context) (*BalanceReport, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	return NewBalanceReport(s.context(ctx), s.fetch, accounts, s.opts...)
}

// Orders lists every order found in the account ledgers.
func (s *Session) Orders(ctx context.Context) (*OrderHistory, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	ctx = s.context(ctx)
	ids, warnings, err := resolveOrderIDs(ctx, s.fetch, accounts, s.o)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve orders: %w", err)
	}
	h, err := NewOrderHistory(ctx, s.fetch, ids, s.opts...)
	if err != nil {
		return nil, err
	}
	h.Warnings = append(warnings, h.Warnings...)
	return h, nil
}

// Summary builds the portfolio summary.
func (s *Session) Summary(ctx context.Context) (*Summary, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	ctx = s.context(ctx)
	ids, warnings, err := resolveOrderIDs(ctx, s.fetch, accounts, s.o)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve orders: %w", err)
	}
	summary, err := BuildSummary(ctx, s.fetch, accounts, ids, s.opts...)
	if err != nil {
		return nil, err
	}
	summary.Warnings = append(warnings, summary.Warnings...)
	return summary, nil
}
