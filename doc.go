// Package coinfolio computes the performance of a portfolio held on the
// Coinbase Exchange.
//
// The package never talks HTTP itself: every operation is given a Fetcher,
// the authenticated GET capability implemented by package coinbase.
//
// The core functionalities are:
//   - Account discovery: DiscoverAccounts keeps the accounts holding a
//     positive balance, keyed by currency symbol.
//   - Order resolution: ResolveOrderIDs walks the account ledgers and returns
//     the distinct order ids that produced them, in first-seen order.
//   - Portfolio summary: BuildSummary sums the executed value of the orders per
//     asset (the cost basis), values the available quantities at the last
//     market price and derives profit and gain per asset and in total.
//
// All amounts are decimals: totals are exact sums of the per-asset values.
//
// A position without cost basis (an asset transferred in rather than bought)
// reports a gain of 100%. This is a display rule to avoid the division by
// zero, flagged by AssetPosition.NoCostBasis.
//
// Session ties these together for the `coin` command-line tool.
package coinfolio
