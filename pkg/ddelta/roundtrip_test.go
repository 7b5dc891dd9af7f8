package ddelta

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoundTripFuzz exercises the primary round-trip law,
// apply(old, generate(old, new)) == new, over many random pairs. Pair
// size is capped at 4 KiB so the suite runs quickly; the seeded source
// keeps every failure reproducible.
func TestRoundTripFuzz(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	const trials = 1000
	const maxSize = 4096

	for trial := 0; trial < trials; trial++ {
		old := randomOverlappingBytes(rng, maxSize, nil)
		new := randomOverlappingBytes(rng, maxSize, old)

		var patch bytes.Buffer
		require.NoErrorf(t, Generate(old, new, &patch), "trial %d: Generate(%d, %d bytes)", trial, len(old), len(new))

		var out bytes.Buffer
		err := Apply(bytes.NewReader(patch.Bytes()), bytes.NewReader(old), &out)
		require.NoErrorf(t, err, "trial %d: Apply", trial)
		require.Equalf(t, new, out.Bytes(), "trial %d: round trip mismatch (old len %d, new len %d)", trial, len(old), len(new))
	}
}

// randomOverlappingBytes builds a random byte slice up to maxSize long. When
// base is non-empty, each step either copies a random chunk of base or emits
// one random byte, with equal odds, so most of the output is taken from base
// with random bytes between the chunks, and generate actually has
// approximate matches to find — a pure
// uniform-random (O, N) pair would almost never share a useful match,
// exercising only the empty-match path of the scan loop.
func randomOverlappingBytes(rng *rand.Rand, maxSize int, base []byte) []byte {
	n := rng.Intn(maxSize + 1)
	out := make([]byte, n)

	if len(base) == 0 {
		for i := range out {
			out[i] = byte(rng.Intn(256))
		}
		return out
	}

	for i := 0; i < n; {
		if rng.Intn(2) == 0 && len(base) > 0 {
			start := rng.Intn(len(base))
			length := rng.Intn(len(base)-start) + 1
			if i+length > n {
				length = n - i
			}
			copy(out[i:i+length], base[start:start+length])
			i += length
		} else {
			out[i] = byte(rng.Intn(256))
			i++
		}
	}
	return out
}
