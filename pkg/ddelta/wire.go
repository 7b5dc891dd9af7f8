package ddelta

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the eight-byte tag opening every DDELTA40 patch stream.
const Magic = "DDELTA40"

const headerSize = 8 + 8 // magic + new_file_size
const recordHeaderSize = 8 + 8 + 8

// header is the fixed-size preamble of a patch stream.
type header struct {
	newFileSize uint64
}

func writeHeader(w io.Writer, newFileSize uint64) error {
	var buf [headerSize]byte
	copy(buf[:8], Magic)
	binary.BigEndian.PutUint64(buf[8:16], newFileSize)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrPatchIO, err)
	}
	return nil
}

func readHeader(r io.Reader) (header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, fmt.Errorf("%w: reading header: %v", ErrPatchIO, err)
	}
	if string(buf[:8]) != Magic {
		return header{}, fmt.Errorf("%w: got %q", ErrMagic, buf[:8])
	}
	return header{newFileSize: binary.BigEndian.Uint64(buf[8:16])}, nil
}

// record is one control triple: the diff and extra payload lengths that
// follow it in the stream, and the signed relative seek to apply to the
// old-file cursor afterwards.
type record struct {
	diff  uint64
	extra uint64
	seek  int64
}

// isTerminator reports whether r is the zero record that ends every
// well-formed patch stream.
func (r record) isTerminator() bool {
	return r.diff == 0 && r.extra == 0 && r.seek == 0
}

func writeRecord(w io.Writer, diff, extra uint64, seek int64) error {
	var buf [recordHeaderSize]byte
	binary.BigEndian.PutUint64(buf[0:8], diff)
	binary.BigEndian.PutUint64(buf[8:16], extra)
	binary.BigEndian.PutUint64(buf[16:24], seekToUnsigned(seek))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: writing record: %v", ErrPatchIO, err)
	}
	return nil
}

func readRecord(r io.Reader) (record, error) {
	var buf [recordHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return record{}, fmt.Errorf("%w: reading record: %v", ErrPatchIO, err)
	}
	return record{
		diff:  binary.BigEndian.Uint64(buf[0:8]),
		extra: binary.BigEndian.Uint64(buf[8:16]),
		seek:  seekToSigned(binary.BigEndian.Uint64(buf[16:24])),
	}, nil
}

// seekToUnsigned maps the signed seek field to its fixed-width
// two's-complement wire form: u = (i >= 0) ? i : ~(-i) + 1.
func seekToUnsigned(i int64) uint64 {
	if i >= 0 {
		return uint64(i)
	}
	return ^uint64(-i) + 1
}

// seekToSigned is the inverse of seekToUnsigned: if the high bit of u is
// set, the value is -(int64)(~(u-1)).
func seekToSigned(u uint64) int64 {
	if u&(1<<63) == 0 {
		return int64(u)
	}
	return -int64(^(u - 1))
}
