// Package seedmask builds the seed masks consumed by the canonical k-mer
// extractor: contiguous masks (plain k-mers) and randomly-generated spaced
// seed masks (m informative positions out of a window of window_size).
package seedmask

import (
	"math/rand"

	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/sketcherrors"
)

// Contiguous returns the mask for a contiguous k-mer of length k: the low
// 2k bits set, as per §4.C (it is exactly bitset.Prefix[k]).
func Contiguous(k int) bitset.Bitset {
	return bitset.Prefix[k]
}

// RandomSpaced generates a uniform-random spaced seed mask: windowSize
// nucleotide positions, of which exactly m are selected as informative
// (their 2-bit slot set to 0b11); the rest are 0b00. The selection is a
// Fisher-Yates shuffle of {0,...,windowSize-1} seeded deterministically by
// seed, so the same seed always yields the same mask.
//
// Returns sketcherrors.ErrInvalidSeed if m > windowSize or
// windowSize > bitset.MaxK.
func RandomSpaced(windowSize, m int, seed int64) (bitset.Bitset, error) {
	if m > windowSize || windowSize > bitset.MaxK {
		return bitset.Zero, sketcherrors.ErrInvalidSeed
	}

	positions := make([]int, windowSize)
	for i := range positions {
		positions[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})

	var mask bitset.Bitset
	for _, pos := range positions[:m] {
		mask.SetBit(2 * pos)
		mask.SetBit(2*pos + 1)
	}
	return mask, nil
}
