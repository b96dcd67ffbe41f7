package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/coinfolio"
)

// AccountsMarkdown lists the accounts discovered at login.
func AccountsMarkdown(accounts coinfolio.Accounts) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Accounts\n\n")
	if len(accounts) == 0 {
		fmt.Fprint(&b, "No account holds a positive balance.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Currency | Balance | Available | Hold | Account |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, symbol := range accounts.Symbols() {
		acc := accounts[symbol]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | `%s` |\n", symbol, acc.Balance, acc.Available, acc.Hold, acc.ID)
	}
	return b.String()
}
