// Package sketchbuilder drives the canonical k-mer extractor (src/kmer)
// across the runs produced by an external FASTA source, inserting every
// accepted k-mer into a fresh sketch set (component G).
package sketchbuilder

import (
	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/kmer"
	"github.com/will-rowe/gani/src/nucleotide"
	"github.com/will-rowe/gani/src/sketch"
	"github.com/will-rowe/gani/src/sketcherrors"
)

// Build runs the extractor over every run in runs with the given mask,
// window length and selection predicate, inserting accepted k-mers into a
// fresh sketch set. An empty runs slice is not an error — the result is an
// empty sketch.
//
// Returns sketcherrors.ErrWindowTooLarge if windowLength exceeds
// bitset.MaxK, or sketcherrors.ErrMaskWidthMismatch if mask has any set bit
// at a position >= 2*windowLength.
func Build(runs []nucleotide.Run, mask bitset.Bitset, windowLength int, predicate kmer.Predicate) (*sketch.Set, error) {
	if windowLength > bitset.MaxK {
		return nil, sketcherrors.ErrWindowTooLarge
	}
	for pos := 2 * windowLength; pos < bitset.Width; pos++ {
		if mask.Bit(pos) == 1 {
			return nil, sketcherrors.ErrMaskWidthMismatch
		}
	}

	s := sketch.New()
	for _, run := range runs {
		if err := kmer.Extract(run, windowLength, mask, predicate, s.Insert); err != nil {
			return nil, err
		}
	}
	return s, nil
}
