package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type ordersCmd struct{}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list the orders found in the account ledgers" }
func (*ordersCmd) Usage() string {
	return `coin orders

  Lists every order that produced an entry in an account ledger, oldest first,
  with the total executed value.
`
}

func (*ordersCmd) SetFlags(*flag.FlagSet) {}

func (*ordersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, ordersReport)
}
