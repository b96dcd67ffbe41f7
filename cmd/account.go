package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type accountCmd struct{}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "list the accounts holding a positive balance" }
func (*accountCmd) Usage() string {
	return `coin account

  Lists the currency accounts holding a positive balance, with their ids.
`
}

func (*accountCmd) SetFlags(*flag.FlagSet) {}

func (*accountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, accountReport)
}
