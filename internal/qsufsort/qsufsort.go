// Package qsufsort builds a suffix array over a byte buffer using the
// Larsson-Sadakane algorithm, the same O(n log n) construction BSDIFF and
// its derivatives have always shipped in place of a dedicated
// libdivsufsort binding.
//
// Given a byte slice, Build returns the sorted suffix index array, or an
// error if the input cannot be represented. Indices are int32 since the
// caller is bound to the same 2 GiB-1 limit.
package qsufsort

import (
	"errors"
	"math"
)

// ErrTooLarge is returned when data is too long to index with int32
// suffix offsets.
var ErrTooLarge = errors.New("qsufsort: input exceeds int32 addressable size")

// Build returns the suffix array I of data: I[k] is the starting offset of
// the k-th lexicographically smallest suffix of data (including the
// implicit empty suffix at len(data), which always sorts first). The
// returned slice has length len(data)+1.
func Build(data []byte) ([]int32, error) {
	n := len(data)
	if n > math.MaxInt32-1 {
		return nil, ErrTooLarge
	}

	sa := make([]int32, n+1)
	rank := make([]int32, n+1)
	buildRank(sa, rank, data)

	for h := int32(1); sa[0] != -(int32(n) + 1); h += h {
		var length int32
		i := int32(0)
		for int(i) < n+1 {
			if sa[i] < 0 {
				length -= sa[i]
				i -= sa[i]
			} else {
				if length != 0 {
					sa[i-length] = -length
				}
				length = rank[sa[i]] + 1 - i
				split(sa, rank, i, length, h)
				i += length
				length = 0
			}
		}
		if length != 0 {
			sa[i-length] = -length
		}
	}

	for i := range sa {
		sa[rank[i]] = int32(i)
	}

	return sa, nil
}

// buildRank performs the initial bucket sort by single-byte value,
// populating sa with bucket-ordered offsets and rank with each offset's
// bucket rank, per the classic qsufsort initialization.
func buildRank(sa, rank []int32, data []byte) {
	n := len(data)

	var buckets [256]int32
	for i := 0; i < n; i++ {
		buckets[data[i]]++
	}
	for i := 1; i < 256; i++ {
		buckets[i] += buckets[i-1]
	}
	for i := 255; i > 0; i-- {
		buckets[i] = buckets[i-1]
	}
	buckets[0] = 0

	for i := 0; i < n; i++ {
		buckets[data[i]]++
		sa[buckets[data[i]]] = int32(i)
	}
	sa[0] = int32(n)

	for i := 0; i < n; i++ {
		rank[i] = buckets[data[i]]
	}
	rank[n] = 0

	for i := 1; i < 256; i++ {
		if buckets[i] == buckets[i-1]+1 {
			sa[buckets[i]] = -1
		}
	}
	sa[0] = -1
}

// split refines the group sa[start:start+length] (all currently ranked
// equal at depth h) by their rank at depth h+h, the core step of the
// doubling algorithm. Three-way partition: iterative selection sort for
// small groups, recursive quicksort-style partitioning otherwise.
func split(sa, rank []int32, start, length, h int32) {
	if length < 16 {
		for k := start; k < start+length; {
			j := int32(1)
			x := rank[sa[k]+h]

			for i := int32(1); k+i < start+length; i++ {
				if rank[sa[k+i]+h] < x {
					x = rank[sa[k+i]+h]
					j = 0
				}
				if rank[sa[k+i]+h] == x {
					sa[k+j], sa[k+i] = sa[k+i], sa[k+j]
					j++
				}
			}

			for i := int32(0); i < j; i++ {
				rank[sa[k+i]] = k + j - 1
			}
			if j == 1 {
				sa[k] = -1
			}
			k += j
		}
		return
	}

	x := rank[sa[start+length/2]+h]

	var jj, kk int32
	for i := start; i < start+length; i++ {
		if rank[sa[i]+h] < x {
			jj++
		} else if rank[sa[i]+h] == x {
			kk++
		}
	}
	jj += start
	kk += jj

	i, j, k := start, int32(0), int32(0)
	for i < jj {
		if rank[sa[i]+h] < x {
			i++
		} else if rank[sa[i]+h] == x {
			sa[i], sa[jj+j] = sa[jj+j], sa[i]
			j++
		} else {
			sa[i], sa[kk+k] = sa[kk+k], sa[i]
			k++
		}
	}

	for jj+j < kk {
		if rank[sa[jj+j]+h] == x {
			j++
		} else {
			sa[jj+j], sa[kk+k] = sa[kk+k], sa[jj+j]
			k++
		}
	}

	if jj > start {
		split(sa, rank, start, jj-start, h)
	}

	for i := int32(0); i < kk-jj; i++ {
		rank[sa[jj+i]] = kk - 1
	}
	if jj == kk-1 {
		sa[jj] = -1
	}

	if start+length > kk {
		split(sa, rank, kk, start+length-kk, h)
	}
}
