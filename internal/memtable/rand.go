package memtable

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// mathRandChooser implements levelChooser over math/rand, matching the
// original single-threaded skip list's reliance on a seedable PRNG
// rather than a CSPRNG — speed matters far more than unpredictability
// for level selection.
type mathRandChooser struct {
	r *rand.Rand
}

func newMathRandChooser(seed int64, randomizeSeed bool) *mathRandChooser {
	if randomizeSeed {
		seed = cryptoSeed()
	}
	return &mathRandChooser{r: rand.New(rand.NewSource(seed))}
}

func (c *mathRandChooser) next(pDen int) int {
	return c.r.Intn(pDen)
}

// cryptoSeed draws a seed from crypto/rand for New()'s non-deterministic
// default; tests that need reproducibility use NewWithSeed instead.
func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0xC0FFEE
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
