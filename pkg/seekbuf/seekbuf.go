// Package seekbuf provides a buffered reader over a seekable source
// where a relative seek that lands inside the still-buffered window just
// slides the cursor instead of issuing a syscall. Patch application
// seeks the old file after every record, usually by small distances, so
// the buffer survives most of those seeks intact.
package seekbuf

import (
	"fmt"
	"io"
)

const defaultBufSize = 4 * 1024

// Reader wraps an io.ReadSeeker with a read-ahead buffer that survives
// small forward/backward seeks without touching the underlying source.
//
// Invariant: pos is the absolute offset of buf[start] (the next byte a
// Read will return); whenever start == end (buffer empty), pos equals
// the underlying source's actual cursor.
type Reader struct {
	src io.ReadSeeker

	buf        []byte
	start, end int // buf[start:end] holds bytes already fetched from src
	pos        int64
}

// New wraps src with a seek-aware read buffer of the default size.
func New(src io.ReadSeeker) (*Reader, error) {
	return NewSize(src, defaultBufSize)
}

// NewSize wraps src with a seek-aware read buffer of the given size.
func NewSize(src io.ReadSeeker, size int) (*Reader, error) {
	if size <= 0 {
		size = defaultBufSize
	}
	pos, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("seekbuf: determining initial offset: %w", err)
	}
	return &Reader{src: src, buf: make([]byte, size), pos: pos}, nil
}

// Read implements io.Reader, refilling the internal buffer from src as
// needed. A read at least as large as the buffer, made while the buffer is
// empty, bypasses it entirely and goes straight to src.
func (r *Reader) Read(p []byte) (int, error) {
	var total int

	for len(p) > 0 {
		if r.start == r.end {
			r.start, r.end = 0, 0

			if len(p) >= len(r.buf) {
				n, err := r.src.Read(p)
				r.pos += int64(n)
				return total + n, err
			}

			n, err := r.src.Read(r.buf)
			if n == 0 {
				if err == nil {
					err = io.EOF
				}
				if total > 0 {
					return total, nil
				}
				return total, err
			}
			r.end = n
		}

		n := copy(p, r.buf[r.start:r.end])
		r.start += n
		r.pos += int64(n)
		total += n
		p = p[n:]
	}

	return total, nil
}

// Seek implements io.Seeker. A relative offset that still lands within
// the already-fetched window buf[0:end] only moves the window pointer;
// anything else discards the buffer and seeks the underlying source.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent {
		if newStart, ok := addWithinInt(r.start, offset); ok && newStart >= 0 && newStart <= int64(r.end) {
			r.start = int(newStart)
			r.pos += offset
			return r.pos, nil
		}
	}

	buffered := int64(r.end - r.start)
	localOffset := int64(0)
	if whence == io.SeekCurrent {
		localOffset = buffered
	}
	r.start, r.end = 0, 0

	newPos, err := r.src.Seek(offset-localOffset, whence)
	if err != nil {
		return 0, fmt.Errorf("seekbuf: seek: %w", err)
	}
	r.pos = newPos
	return r.pos, nil
}

// addWithinInt adds a (possibly large) int64 offset to an int window
// index, reporting whether the sum stays representable as an int without
// wraparound.
func addWithinInt(base int, offset int64) (int64, bool) {
	sum := int64(base) + offset
	if sum < int64(-1<<62) || sum > int64(1<<62) {
		return 0, false
	}
	return sum, true
}
