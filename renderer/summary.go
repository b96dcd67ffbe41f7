package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/coinfolio"
)

// SummaryMarkdown renders the portfolio summary as a markdown table, one row
// per asset, followed by the totals and the skipped items.
func SummaryMarkdown(s *coinfolio.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary (%s)\n\n", s.Quote)
	fmt.Fprintln(&b, "| Asset | Deposited | Quantity | Price | Value | Profit | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			p.Symbol,
			p.Deposited,
			p.Quantity,
			price(p.Price, p.PriceMissing),
			p.Value,
			p.Profit.Round(2).SignedString(),
			gain(p.Gain, p.NoCostBasis),
		)
	}
	fmt.Fprintf(&b, "| **%s** | **%s** | | | **%s** | **%s** | **%s** |\n",
		"Total",
		s.Total.Deposited,
		s.Total.Value,
		s.Total.Profit.Round(2).SignedString(),
		gain(s.Total.Gain, s.Total.NoCostBasis),
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w)
		fmt.Fprintln(w, noCostBasisNote)
		if s.Total.NoCostBasis {
			return true
		}
		for _, p := range s.Positions {
			if p.NoCostBasis {
				return true
			}
		}
		return false
	})

	writeWarnings(&b, s.Warnings)
	return b.String()
}

const noCostBasisNote = "\\* no cost basis: the asset was not bought on the exchange, gain is reported as 100%."

// price formats a market price, or "n/a" when it could not be fetched.
func price(p coinfolio.Money, missing bool) string {
	if missing {
		return "n/a"
	}
	return p.String()
}

// gain formats a gain, flagging the conventional 100% of a position without cost basis.
func gain(g coinfolio.Percent, noCostBasis bool) string {
	if noCostBasis {
		return g.SignedString() + "\\*"
	}
	return g.SignedString()
}
