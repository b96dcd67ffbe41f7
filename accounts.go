package coinfolio

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// Accounts maps a currency symbol to the account holding it.
type Accounts map[string]Account

// Symbols returns the account symbols in lexical order.
//
// Every fan-out over the accounts iterates in this order so that reports are
// deterministic.
func (a Accounts) Symbols() []string {
	return slices.Sorted(maps.Keys(a))
}

// DiscoverAccounts lists the exchange accounts and keeps the ones holding a
// strictly positive balance, keyed by currency.
//
// If the exchange lists the same currency twice, the later account wins.
func DiscoverAccounts(ctx context.Context, f Fetcher) (Accounts, error) {
	log := zerolog.Ctx(ctx)
	var list []Account
	if err := f.Get(ctx, "accounts", &list); err != nil {
		return nil, fmt.Errorf("cannot list accounts: %w", err)
	}

	accounts := make(Accounts)
	for _, acc := range list {
		if acc.Currency == "" || acc.ID == "" {
			log.Warn().Str("account", acc.ID).Msg("skipping account without currency or id")
			continue
		}
		if !acc.Balance.IsPositive() {
			continue
		}
		if prev, exists := accounts[acc.Currency]; exists {
			log.Debug().Str("currency", acc.Currency).Str("replaced", prev.ID).Str("by", acc.ID).Msg("duplicate account")
		}
		accounts[acc.Currency] = acc
	}
	log.Debug().Int("listed", len(list)).Int("kept", len(accounts)).Msg("accounts discovered")
	return accounts, nil
}

// GetAccount fetches the live detail of one account.
func GetAccount(ctx context.Context, f Fetcher, id string) (Account, error) {
	var acc Account
	if err := f.Get(ctx, "accounts/"+id, &acc); err != nil {
		return Account{}, err
	}
	if acc.Currency == "" {
		return Account{}, &Error{Kind: KindDataShape, Op: "GET accounts", Subject: id, Err: fmt.Errorf("missing currency")}
	}
	return acc, nil
}
