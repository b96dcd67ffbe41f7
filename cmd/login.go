package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "check the API keys and discover the accounts" }
func (*loginCmd) Usage() string {
	return `coin login

  Loads the API keys, authenticates against the exchange and counts the
  accounts holding a positive balance.
`
}

func (*loginCmd) SetFlags(*flag.FlagSet) {}

func (*loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, loginReport)
}
