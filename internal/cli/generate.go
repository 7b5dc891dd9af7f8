package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/julian-klode/ddelta/pkg/ddelta"
	flag "github.com/spf13/pflag"
)

// GenerateCmd returns the "generate OLD NEW PATCH" command.
func GenerateCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("generate", flag.ContinueOnError),
		Usage: "generate OLD NEW PATCH",
		Short: "Produce a DDELTA40 patch turning OLD into NEW",
		Exec:  execGenerate,
	}
}

func execGenerate(_ *IO, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("generate: usage: ddelta generate OLD NEW PATCH")
	}
	oldPath, newPath, patchPath := args[0], args[1], args[2]

	old, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ddelta.ErrOldIO, oldPath, err)
	}
	newBytes, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ddelta.ErrNewIO, newPath, err)
	}

	var patch bytes.Buffer
	if err := ddelta.Generate(old, newBytes, &patch); err != nil {
		return err
	}

	if err := atomic.WriteFile(patchPath, bytes.NewReader(patch.Bytes())); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ddelta.ErrPatchIO, patchPath, err)
	}

	return nil
}
