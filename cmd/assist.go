package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "discuss the portfolio with the AI assistant" }
func (*assistCmd) Usage() string {
	return `coin assist [question...]

  Starts an interactive session with a Gemini model primed with the
  portfolio summary. The model is set by COIN_GEMINI_MODEL and the Gemini
  client is configured by the usual GOOGLE_API_KEY or GEMINI_API_KEY variables.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	session, settings, err := newSession()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	summary, err := summaryReport(ctx, session)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	advisor := agent.NewAdvisor(settings.GeminiModel, summary, sessionReports(session)...)
	a := agent.New(os.Stdout, os.Stdin, promptStyle.Render("assist>")+" ", advisor)
	a.Print = fprintMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// sessionReports exposes the session reports to the assistant.
func sessionReports(s *coinfolio.Session) []*agent.Report {
	bind := func(r report) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) { return r(ctx, s) }
	}
	return []*agent.Report{
		{Name: "balance", Description: "Current quantity and value of every account, by decreasing value.", Run: bind(balanceReport)},
		{Name: "orders", Description: "History of the orders found in the account ledgers, oldest first.", Run: bind(ordersReport)},
		{Name: "accounts", Description: "Currency accounts holding a positive balance.", Run: bind(accountReport)},
		{Name: "summary", Description: "Deposited amount, value, profit and gain per asset, freshly computed.", Run: bind(summaryReport)},
	}
}
