package renderer

import (
	"io"

	"github.com/etnz/coinfolio"
)

// writeWarnings prints the "Skipped" section, only if there is anything to report.
func writeWarnings(w io.Writer, warnings []coinfolio.Warning) {
	skipped := section{heading: "\n## Skipped\n\n"}
	for _, warn := range warnings {
		skipped.printf(w, "- **%s** (%s): %s\n", warn.Subject, warn.Kind, warn.Reason)
	}
}
