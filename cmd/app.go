// Package cmd implements the coin command-line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coinbase"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists the subcommands of the coin application.
var Commands = []subcommands.Command{
	&loginCmd{},
	&balanceCmd{},
	&ordersCmd{},
	&accountCmd{},
	&summaryCmd{},
	&shellCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var keysFile = flag.String("keys", "", "Path to the API keys file (JSON with \"key\", \"secret\" and \"pass\"). Overrides COIN_KEYS_FILE.")
var verbose = flag.Bool("v", false, "Log debug messages to stderr.")

var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// newLogger creates the console logger of the application, on stderr.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	if *verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

// newSession loads the settings and the credentials and creates an
// authenticated session. Nothing is sent to the exchange yet.
func newSession() (*coinfolio.Session, *Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	if *keysFile != "" {
		settings.KeysFile = *keysFile
	}
	log := newLogger(settings.LogLevel)

	credentials, err := coinbase.LoadCredentials(settings.KeysFile)
	if err != nil {
		return nil, nil, err
	}
	client, err := coinbase.NewClient(credentials,
		coinbase.WithBaseURL(settings.APIURL),
		coinbase.WithTimeout(settings.Timeout),
		coinbase.WithRateLimit(settings.RateLimit),
		coinbase.WithRetryConfig(coinbase.RetryConfig{
			MaxRetries:      settings.MaxRetries,
			InitialInterval: settings.RetryInitialInterval,
			MaxInterval:     settings.RetryMaxInterval,
		}),
		coinbase.WithLogger(log),
	)
	if err != nil {
		return nil, nil, err
	}
	session := coinfolio.NewSession(client,
		coinfolio.WithConcurrency(settings.Concurrency),
		coinfolio.WithQuote(settings.Quote),
		coinfolio.WithNetSells(settings.NetSells),
		coinfolio.WithLogger(log),
	)
	return session, settings, nil
}

// printMarkdown renders markdown for the terminal on stdout.
func printMarkdown(md string) {
	fprintMarkdown(os.Stdout, md)
}

func fprintMarkdown(w io.Writer, md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// the raw markdown is still readable.
		out = md
	}
	fmt.Fprint(w, out)
}

// printError prints err on stderr.
func printError(err error) {
	fprintError(os.Stderr, err)
}

func fprintError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error:"), err)
	switch coinfolio.KindOf(err) {
	case coinfolio.KindConfiguration:
		fmt.Fprintln(w, "Check your keys file (-keys) and your COIN_* environment variables.")
	case coinfolio.KindAuthentication:
		fmt.Fprintln(w, "The exchange rejected the request: check the API key, its permissions and your clock.")
	}
}

// report is an output of the application, rendered as markdown.
type report func(ctx context.Context, s *coinfolio.Session) (string, error)

// execute runs a report in a fresh session and prints it.
func execute(ctx context.Context, r report) subcommands.ExitStatus {
	session, _, err := newSession()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	md, err := r(ctx, session)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
