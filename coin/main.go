// Command coin reports the performance of a portfolio held on the Coinbase Exchange.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/etnz/coinfolio/cmd"
	"github.com/etnz/coinfolio/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// completion describes the command line for shell completion. It is only
// active when the shell sets COMP_LINE, install it with COMP_INSTALL=1 coin.
func completion(name string) *complete.Command {
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		flags := make(map[string]complete.Predictor)
		fs.VisitAll(func(f *flag.Flag) { flags[f.Name] = predict.Nothing })
		sub[c.Name()] = &complete.Command{Flags: flags}
	}
	sub["topic"].Args = predict.Set(docs.Topics())
	sub["help"] = &complete.Command{}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"keys": predict.Files("*.json"),
			"v":    predict.Nothing,
		},
	}
}
