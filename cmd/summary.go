package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio performance per asset" }
func (*summaryCmd) Usage() string {
	return `coin summary [-json]

  Displays, for every asset, the amount deposited (executed value of its
  orders), the current value at the last market price, the profit and the gain.

  An asset without cost basis (transferred in) reports a gain of 100%.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the summary as JSON instead of a table")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.json {
		return execute(ctx, summaryReport)
	}

	session, _, err := newSession()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	summary, err := session.Summary(ctx)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(data))
	return subcommands.ExitSuccess
}
