package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/coinfolio"
)

// OrdersMarkdown renders the order history, one order per line, oldest first.
func OrdersMarkdown(h *coinfolio.OrderHistory) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Orders\n\n")
	if len(h.Orders) == 0 {
		fmt.Fprint(&b, "No orders.\n")
		writeWarnings(&b, h.Warnings)
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Side | Product | Size | Executed Value | Fees |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, o := range h.Orders {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			o.DoneAt.Format("2006-01-02"),
			o.Side,
			o.ProductID,
			o.FilledSize,
			coinfolio.M(o.ExecutedValue, o.QuoteCurrency()),
			coinfolio.M(o.FillFees, o.QuoteCurrency()),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | |\n", h.Total)

	writeWarnings(&b, h.Warnings)
	return b.String()
}
