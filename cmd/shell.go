package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/google/subcommands"
)

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "start an interactive session" }
func (*shellCmd) Usage() string {
	return `coin shell

  Starts an interactive session. Available commands are:
  login, balance, orders, account, summary and quit.

  The accounts are discovered once, at the first command, and kept for the
  whole session. Use 'login' to discover them again.
`
}

func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (*shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, _, err := newSession()
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	sh := newShell(os.Stdout, os.Stdin, session)
	sh.print = fprintMarkdown
	if err := sh.run(ctx); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// shellCommands are the commands of the interactive session, by name.
var shellCommands = map[string]report{
	"login":   loginReport,
	"balance": balanceReport,
	"orders":  ordersReport,
	"account": accountReport,
	"summary": summaryReport,
}

const shellHelp = "available commands: login, balance, orders, account, summary, quit"

// shell is the read-eval-print loop of the interactive session.
type shell struct {
	w       io.Writer
	r       *bufio.Reader
	session *coinfolio.Session
	print   func(w io.Writer, markdown string)
}

func newShell(w io.Writer, r io.Reader, session *coinfolio.Session) *shell {
	return &shell{
		w:       w,
		r:       bufio.NewReader(r),
		session: session,
		print:   func(w io.Writer, md string) { fmt.Fprint(w, md) },
	}
}

// run loops until 'quit', end of input or cancellation. Failed commands are
// reported and the loop goes on.
func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.w, "welcome to coin shell")
	fmt.Fprintln(s.w, shellHelp)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.w, promptStyle.Render("coin>")+" ")
		line, err := s.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		quit := s.exec(ctx, strings.TrimSpace(line))
		if quit || err == io.EOF {
			return nil
		}
	}
}

// exec runs a single command line and reports whether the session is over.
func (s *shell) exec(ctx context.Context, line string) (quit bool) {
	switch line {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.w, shellHelp)
		return false
	}
	r, ok := shellCommands[line]
	if !ok {
		fmt.Fprintf(s.w, "unknown command %q, %s\n", line, shellHelp)
		return false
	}
	md, err := r(ctx, s.session)
	if err != nil {
		fprintError(s.w, err)
		return false
	}
	s.print(s.w, md)
	return false
}
