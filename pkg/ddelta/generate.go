package ddelta

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/julian-klode/ddelta/internal/qsufsort"
)

// Generate writes a DDELTA40 patch that, applied to old, reproduces new
// byte-exactly. old and new are each bounded by the 2 GiB-1
// int32-addressable limit inherited from the suffix-array construction.
func Generate(old, new []byte, patch io.Writer) error {
	if len(old) > math.MaxInt32-1 {
		return fmt.Errorf("%w: old file has %d bytes, exceeds int32 bound", ErrOldIO, len(old))
	}
	if len(new) > math.MaxInt32-1 {
		return fmt.Errorf("%w: new file has %d bytes, exceeds int32 bound", ErrNewIO, len(new))
	}

	sa, err := qsufsort.Build(old)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAlgo, err)
	}

	w := bufio.NewWriter(patch)

	if err := writeHeader(w, uint64(len(new))); err != nil {
		return err
	}

	if err := scan(sa, old, new, w); err != nil {
		return err
	}

	if err := writeRecord(w, 0, 0, 0); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: flushing patch: %v", ErrPatchIO, err)
	}
	return nil
}

// scan runs the main generator loop: it walks new, finding approximate
// matches against old via the suffix array, and emits one record per
// useful match.
func scan(sa []int32, old, new []byte, w *bufio.Writer) error {
	oldsize := len(old)
	newsize := len(new)

	var scanPos, length, pos int
	var lastscan, lastpos, lastoffset int

	for scanPos < newsize {
		oldscore := 0
		scanPos += length
		scsc := scanPos

		numLessThanEight := 0

		for scanPos < newsize {
			prevLen, prevOldscore, prevPos := length, oldscore, pos

			// The search is bounded to oldsize-1 while the forward and
			// backward extensions below use the full oldsize. The
			// asymmetry reserves one trailing position and is part of
			// the format's reference behavior; do not "fix" it.
			length, pos = search(sa, old, oldsize-1, new[scanPos:], 0, oldsize)

			for ; scsc < scanPos+length; scsc++ {
				if scsc+lastoffset < oldsize && old[scsc+lastoffset] == new[scsc] {
					oldscore++
				}
			}

			if (length == oldscore && length != 0) || length > oldscore+8 {
				break
			}

			if scanPos+lastoffset < oldsize && old[scanPos+lastoffset] == new[scanPos] {
				oldscore--
			}
			scanPos++

			const fuzz = 8
			if prevLen-fuzz <= length && length <= prevLen &&
				prevOldscore-fuzz <= oldscore && oldscore <= prevOldscore &&
				prevPos <= pos && pos <= prevPos+fuzz &&
				oldscore <= length && length <= oldscore+fuzz {
				numLessThanEight++
			} else {
				numLessThanEight = 0
			}
			if numLessThanEight > 100 {
				break
			}
		}

		if length == oldscore && scanPos != newsize {
			continue
		}

		lenf := forwardExtend(old, new, lastscan, lastpos, scanPos, oldsize)

		lenb := 0
		if scanPos < newsize {
			lenb = backwardExtend(old, new, lastscan, scanPos, pos)
		}

		if lastscan+lenf > scanPos-lenb {
			overlap := (lastscan + lenf) - (scanPos - lenb)
			lens := resolveOverlap(old, new, lastscan, lastpos, scanPos, pos, lenf, lenb, overlap)
			lenf += lens - overlap
			lenb -= lens
		}

		if lenf < 0 || (scanPos-lenb)-(lastscan+lenf) < 0 {
			return fmt.Errorf("%w: negative-length span (lenf=%d, extra=%d)", ErrAlgo, lenf, (scanPos-lenb)-(lastscan+lenf))
		}

		diffLen := lenf
		extraLen := (scanPos - lenb) - (lastscan + lenf)
		recordSeek := (pos - lenb) - (lastpos + lenf)

		if err := writeRecord(w, uint64(diffLen), uint64(extraLen), int64(recordSeek)); err != nil {
			return err
		}

		for i := 0; i < diffLen; i++ {
			if err := w.WriteByte(new[lastscan+i] - old[lastpos+i]); err != nil {
				return fmt.Errorf("%w: writing diff payload: %v", ErrPatchIO, err)
			}
		}
		for i := 0; i < extraLen; i++ {
			if err := w.WriteByte(new[lastscan+lenf+i]); err != nil {
				return fmt.Errorf("%w: writing extra payload: %v", ErrPatchIO, err)
			}
		}

		lastscan = scanPos - lenb
		lastpos = pos - lenb
		lastoffset = pos - scanPos
	}

	return nil
}

// forwardExtend grows the previous record's diff span forward from
// (lastscan, lastpos), choosing the length maximizing 2*matches - length,
// the classic BSDIFF optimal-prefix criterion.
func forwardExtend(old, new []byte, lastscan, lastpos, scanPos, oldsize int) int {
	s, bestScore, lenf := 0, 0, 0
	for i := 0; lastscan+i < scanPos && lastpos+i < oldsize; i++ {
		if old[lastpos+i] == new[lastscan+i] {
			s++
		}
		if s*2-(i+1) > bestScore*2-lenf {
			bestScore = s
			lenf = i + 1
		}
	}
	return lenf
}

// backwardExtend is symmetric to forwardExtend, walking from
// (pos, scanPos) backwards.
func backwardExtend(old, new []byte, lastscan, scanPos, pos int) int {
	s, bestScore, lenb := 0, 0, 0
	for i := 1; scanPos >= lastscan+i && pos >= i; i++ {
		if old[pos-i] == new[scanPos-i] {
			s++
		}
		if s*2-i > bestScore*2-lenb {
			bestScore = s
			lenb = i
		}
	}
	return lenb
}

// resolveOverlap decides, where the forward and backward extensions
// collide, which side owns each overlapping byte: it finds the split
// point maximizing net matches if the overlap were assigned to the
// forward side up to that point and the backward side after it.
func resolveOverlap(old, new []byte, lastscan, lastpos, scanPos, pos, lenf, lenb, overlap int) int {
	s, bestNet, lens := 0, 0, 0
	for i := 0; i < overlap; i++ {
		if new[lastscan+lenf-overlap+i] == old[lastpos+lenf-overlap+i] {
			s++
		}
		if new[scanPos-lenb+i] == old[pos-lenb+i] {
			s--
		}
		if s > bestNet {
			bestNet = s
			lens = i + 1
		}
	}
	return lens
}

// search binary-searches the suffix array range [st, en] (inclusive) for
// the suffix of old with the longest common prefix with new. oldsize
// bounds how much of old each comparison may consider; see the call site
// in scan for why this can differ from len(old). Returns the match
// length and the matching offset in old. When the midpoint comparison
// ties, the search descends into [x, en]; this tie-break is load-bearing
// for reproducible patch output.
func search(sa []int32, old []byte, oldsize int, new []byte, st, en int) (length, pos int) {
	if en-st < 2 {
		x := matchlen(old[sa[st]:], oldsize-int(sa[st]), new)
		y := matchlen(old[sa[en]:], oldsize-int(sa[en]), new)
		if x > y {
			return x, int(sa[st])
		}
		return y, int(sa[en])
	}

	x := st + (en-st)/2
	cmpLen := oldsize - int(sa[x])
	if cmpLen < 0 {
		cmpLen = 0
	}
	if cmpLen > len(new) {
		cmpLen = len(new)
	}
	if lessOrEqual(old[sa[x]:sa[x]+int32(cmpLen)], new[:cmpLen]) {
		return search(sa, old, oldsize, new, x, en)
	}
	return search(sa, old, oldsize, new, st, x)
}

// matchlen returns the length of the common prefix of old (truncated to
// at most oldsize bytes) and new.
func matchlen(old []byte, oldsize int, new []byte) int {
	n := oldsize
	if len(old) < n {
		n = len(old)
	}
	if len(new) < n {
		n = len(new)
	}
	if n < 0 {
		n = 0
	}
	for i := 0; i < n; i++ {
		if old[i] != new[i] {
			return i
		}
	}
	return n
}

// lessOrEqual is memcmp(a, b, len(a)) <= 0, assuming len(a) == len(b).
func lessOrEqual(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return true
}
