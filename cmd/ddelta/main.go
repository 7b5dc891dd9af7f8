// Command ddelta generates and applies DDELTA40 binary patches.
package main

import (
	"os"

	"github.com/julian-klode/ddelta/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}
