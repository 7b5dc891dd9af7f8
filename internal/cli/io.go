// Package cli implements the ddelta command-line dispatcher: two
// subcommands, generate and apply, each taking three positional paths.
package cli

import (
	"fmt"
	"io"
)

// IO bundles the output streams a Command writes to.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates an IO wrapping out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// ErrPrintln writes the single diagnostic line a failure produces to
// stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}
