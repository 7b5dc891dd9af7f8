package ddelta

import "errors"

// Flat error kinds, one sentinel per failure class. No hierarchy: every
// failure surfaced by Generate or Apply is, or wraps (via fmt.Errorf's
// %w), exactly one of these.
var (
	// ErrOldIO indicates the old file/buffer could not be read, or
	// exceeds the 2 GiB-1 size bound.
	ErrOldIO = errors.New("ddelta: old file I/O error")

	// ErrNewIO indicates the new file/buffer could not be read (during
	// generation) or written (during apply), or exceeds the size bound.
	ErrNewIO = errors.New("ddelta: new file I/O error")

	// ErrAlgo indicates suffix-array construction failed, or the scan
	// loop's internal geometry produced an impossible (negative-length)
	// span — a bug-or-corruption signal, never a recoverable condition.
	ErrAlgo = errors.New("ddelta: internal algorithm invariant violated")

	// ErrPatchIO indicates the patch sink (generate) or patch source
	// (apply) failed, including truncation mid-record.
	ErrPatchIO = errors.New("ddelta: patch stream I/O error")

	// ErrMagic indicates the first 8 bytes of a patch stream were not
	// "DDELTA40".
	ErrMagic = errors.New("ddelta: bad magic, not a DDELTA40 patch")

	// ErrPatchShort indicates the zero terminator was read before
	// new_file_size bytes had been written — a well-formed-looking but
	// truncated patch.
	ErrPatchShort = errors.New("ddelta: patch terminated before new file was complete")
)
