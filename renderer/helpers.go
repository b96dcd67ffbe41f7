package renderer

import (
	"bytes"
	"fmt"
	"io"
)

// section prints its heading right before its first line, so that a section
// without lines is not printed at all.
type section struct {
	heading string
	started bool
}

// printf prints a line of the section, preceded by the heading on the first call.
func (s *section) printf(w io.Writer, format string, args ...any) {
	if !s.started {
		s.started = true
		fmt.Fprint(w, s.heading)
	}
	fmt.Fprintf(w, format, args...)
}

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}
