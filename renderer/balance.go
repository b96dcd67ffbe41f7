package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/coinfolio"
)

// BalanceMarkdown renders the value of every account.
func BalanceMarkdown(r *coinfolio.BalanceReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Balance (%s)\n\n", r.Quote)
	fmt.Fprintln(&b, "| Asset | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, h := range r.Holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", h.Symbol, h.Quantity, price(h.Price, h.PriceMissing), h.Value)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n", r.Total)

	writeWarnings(&b, r.Warnings)
	return b.String()
}
