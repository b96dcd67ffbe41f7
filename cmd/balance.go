package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the value of every account" }
func (*balanceCmd) Usage() string {
	return `coin balance

  Displays the available quantity of every account, valued at the last
  market price, by decreasing value.
`
}

func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (*balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, balanceReport)
}
