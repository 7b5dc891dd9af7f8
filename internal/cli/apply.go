package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/julian-klode/ddelta/pkg/ddelta"
	"github.com/julian-klode/ddelta/pkg/seekbuf"
	flag "github.com/spf13/pflag"
)

// ApplyCmd returns the "apply OLD NEW PATCH" command.
func ApplyCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("apply", flag.ContinueOnError),
		Usage: "apply OLD NEW PATCH",
		Short: "Reconstruct NEW from OLD and a DDELTA40 PATCH",
		Exec:  execApply,
	}
}

func execApply(_ *IO, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("apply: usage: ddelta apply OLD NEW PATCH")
	}
	oldPath, newPath, patchPath := args[0], args[1], args[2]

	oldFile, err := os.Open(oldPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ddelta.ErrOldIO, oldPath, err)
	}
	defer oldFile.Close()

	patchFile, err := os.Open(patchPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ddelta.ErrPatchIO, patchPath, err)
	}
	defer patchFile.Close()

	oldSrc, err := seekbuf.New(oldFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ddelta.ErrOldIO, err)
	}

	var newBuf bytes.Buffer
	if err := ddelta.Apply(patchFile, oldSrc, &newBuf); err != nil {
		return err
	}

	if err := atomic.WriteFile(newPath, bytes.NewReader(newBuf.Bytes())); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ddelta.ErrNewIO, newPath, err)
	}

	return nil
}
