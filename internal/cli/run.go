package cli

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Run is ddelta's entry point. Returns the process exit code.
func Run(out, errOut io.Writer, args []string) int {
	globalFlags := flag.NewFlagSet("ddelta", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(&strings.Builder{})
	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")

	o := NewIO(out, errOut)

	if err := globalFlags.Parse(args); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	commands := []*Command{GenerateCmd(), ApplyCmd()}

	commandAndArgs := globalFlags.Args()

	if *flagHelp || len(commandAndArgs) == 0 {
		printUsage(o, commands)
		if len(commandAndArgs) == 0 && !*flagHelp {
			return 1
		}
		return 0
	}

	name := commandAndArgs[0]
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(o, commandAndArgs[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, commands)
	return 1
}

func printUsage(o *IO, commands []*Command) {
	o.Println("ddelta - generate and apply DDELTA40 binary patches")
	o.Println()
	o.Println("Usage: ddelta [--help] <command> OLD NEW PATCH")
	o.Println()
	o.Println("Commands:")
	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}
}
