// Package agent implements an AI assistant discussing the user's portfolio.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the chat session between the user and an expert.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	prompt string
	// Print renders a response, defaults to printing it as is.
	Print  func(w io.Writer, markdown string)
	Expert *Expert
}

// New creates an Agent reading the user from r and writing to w.
func New(w io.Writer, r io.Reader, prompt string, expert *Expert) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		prompt: prompt,
		Print:  func(w io.Writer, md string) { fmt.Fprintln(w, md) },
		Expert: expert,
	}
}

// Run starts the interactive session. prompts are asked first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Expert.chat == nil {
		if err := a.Expert.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to coin assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, a.prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch input {
		case "":
			continue
		case "bye", "quit":
			return nil
		}

		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		var b strings.Builder
		for _, p := range content.Parts {
			b.WriteString(p.Text)
		}
		a.Print(a.w, b.String())
	}
}
