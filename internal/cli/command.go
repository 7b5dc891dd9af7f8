package cli

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a ddelta subcommand with unified help generation.
type Command struct {
	// Flags defines command-specific flags. Both subcommands currently
	// take only -h/--help plus their three positional paths.
	Flags *flag.FlagSet

	// Usage is the usage string shown after "ddelta" in help, e.g.
	// "generate OLD NEW PATCH".
	Usage string

	// Short is a one-line description for the top-level help listing.
	Short string

	// Exec runs the command after flags are parsed. args are the
	// positional arguments remaining after flag parsing.
	Exec func(o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the top-level usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// PrintHelp prints "ddelta <cmd> --help" output.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: ddelta", c.Usage)
	o.Println()
	o.Println(c.Short)
}

// Run parses flags and executes the command, returning the process exit
// code. Error printing happens here so every failure path produces
// exactly one diagnostic line on stderr.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag's own usage text

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		return 1
	}

	if err := c.Exec(o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", diagnose(err))
		return 1
	}

	return 0
}
