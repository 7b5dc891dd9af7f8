package cli

import (
	"errors"

	"github.com/julian-klode/ddelta/pkg/ddelta"
)

// kindOf maps a returned error to the flat kind name printed on the
// stderr diagnostic line: "MAGIC", "ALGO", "PATCH_IO", "OLD_IO",
// "NEW_IO", "PATCH_SHORT". Errors that are none of these are reported
// as-is.
func kindOf(err error) string {
	switch {
	case errors.Is(err, ddelta.ErrMagic):
		return "MAGIC"
	case errors.Is(err, ddelta.ErrAlgo):
		return "ALGO"
	case errors.Is(err, ddelta.ErrPatchShort):
		return "PATCH_SHORT"
	case errors.Is(err, ddelta.ErrPatchIO):
		return "PATCH_IO"
	case errors.Is(err, ddelta.ErrOldIO):
		return "OLD_IO"
	case errors.Is(err, ddelta.ErrNewIO):
		return "NEW_IO"
	default:
		return ""
	}
}

// diagnose formats err as the single CLI diagnostic line: the flat kind
// (if recognized) followed by the error's own detail.
func diagnose(err error) string {
	kind := kindOf(err)
	if kind == "" {
		return err.Error()
	}
	return kind + ": " + err.Error()
}
