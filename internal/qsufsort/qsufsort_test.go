package qsufsort

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

// bruteForceSuffixArray is a naive O(n^2 log n) reference used only to
// check Build's output on inputs small enough to make that cost
// irrelevant.
func bruteForceSuffixArray(data []byte) []int32 {
	n := len(data)
	idx := make([]int32, n+1)
	for i := range idx {
		idx[i] = int32(i)
	}
	sort.Slice(idx, func(a, b int) bool {
		return bytes.Compare(data[idx[a]:], data[idx[b]:]) < 0
	})
	return idx
}

func checkSuffixArray(t *testing.T, data []byte, sa []int32) {
	t.Helper()

	if len(sa) != len(data)+1 {
		t.Fatalf("len(sa) = %d, want %d", len(sa), len(data)+1)
	}

	seen := make(map[int32]bool, len(sa))
	for _, v := range sa {
		if v < 0 || int(v) > len(data) {
			t.Fatalf("suffix array entry %d out of range for input of length %d", v, len(data))
		}
		if seen[v] {
			t.Fatalf("suffix array entry %d repeated", v)
		}
		seen[v] = true
	}

	for i := 1; i < len(sa); i++ {
		if bytes.Compare(data[sa[i-1]:], data[sa[i]:]) > 0 {
			t.Fatalf("suffix array not sorted at index %d: %q > %q", i, data[sa[i-1]:], data[sa[i]:])
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	sa, err := Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	checkSuffixArray(t, nil, sa)
}

func TestBuildAgainstBruteForce(t *testing.T) {
	t.Parallel()

	cases := []string{
		"a",
		"aa",
		"aaaa",
		"abcabcabc",
		"banana",
		"mississippi",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		string(bytes.Repeat([]byte{0}, 50)),
	}

	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()

			data := []byte(s)
			sa, err := Build(data)
			if err != nil {
				t.Fatalf("Build(%q): %v", s, err)
			}
			checkSuffixArray(t, data, sa)

			want := bruteForceSuffixArray(data)
			if !equalInt32(sa, want) {
				t.Errorf("Build(%q) = %v, want %v", s, sa, want)
			}
		})
	}
}

func TestBuildRandomInputs(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(500)
		data := make([]byte, n)
		for i := range data {
			// A small alphabet maximizes the number of equal-rank groups
			// split() has to resolve, which is where suffix-sort bugs hide.
			data[i] = byte(rng.Intn(4))
		}

		sa, err := Build(data)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		checkSuffixArray(t, data, sa)

		want := bruteForceSuffixArray(data)
		if !equalInt32(sa, want) {
			t.Fatalf("Build(%v) mismatch on trial %d", data, trial)
		}
	}
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
