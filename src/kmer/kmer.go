// Package kmer implements the canonical k-mer value type and the
// sliding-window extractor that reads one ACGT run and emits the canonical,
// masked k-mer at each window position (component D of the sketching
// engine), filtering through a caller-supplied selection predicate
// (component E, plugged in as a plain function value rather than an
// interface).
package kmer

import (
	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/nucleotide"
	"github.com/will-rowe/gani/src/sketcherrors"
)

// KMer is the canonical masked k-mer emitted by Extract. RawBits is the raw
// (pre-mask) window that was canonical; WindowLength and RawBits are
// carryovers and do not participate in equality (see Key).
type KMer struct {
	WindowLength int
	RawBits      bitset.Bitset
	Mask         bitset.Bitset
	MaskedBits   bitset.Bitset
}

// Key is the (MaskedBits, Mask) pair that defines k-mer equality (§3): two
// k-mers with the same Key collide in a sketch set regardless of their
// RawBits or WindowLength. Key is comparable, so it is used directly as a
// Go map key — see src/sketch for the membership hash this produces.
type Key struct {
	MaskedBits bitset.Bitset
	Mask       bitset.Bitset
}

// Key returns k's equality key.
func (k KMer) Key() Key {
	return Key{MaskedBits: k.MaskedBits, Mask: k.Mask}
}

// Predicate decides whether a canonical k-mer is retained by a sketch. It
// is a plain function value (not an interface), called once per window
// position in Extract's hot loop; src/fracminhash provides the one predicate
// this engine ships.
type Predicate func(KMer) bool

// forwardUpdate advances the forward window by one incoming code: shift
// left by one nucleotide, drop bits above the window, and write the new
// code into the low two bits (§4.D).
func forwardUpdate(fwd bitset.Bitset, c nucleotide.Code, windowLength int) bitset.Bitset {
	fwd = fwd.ShiftLeft(2).And(bitset.Prefix[windowLength])
	if c&1 == 1 {
		fwd.SetBit(0)
	}
	if (c>>1)&1 == 1 {
		fwd.SetBit(1)
	}
	return fwd
}

// reverseUpdate advances the reverse-complement window by one incoming
// code: shift right by one nucleotide (dropping the base that fell off the
// back of the forward window) and write the complement of the new code
// into what is now the top two bits of the window (§4.D).
func reverseUpdate(rev bitset.Bitset, c nucleotide.Code, windowLength int) bitset.Bitset {
	comp := c.Complement()
	rev = rev.ShiftRight(2)
	lo := 2*windowLength - 2
	hi := 2*windowLength - 1
	if comp&1 == 1 {
		rev.SetBit(lo)
	}
	if (comp>>1)&1 == 1 {
		rev.SetBit(hi)
	}
	return rev
}

// Extract slides a window of windowLength nucleotides along run, emitting
// (via emit) the canonical masked k-mer at each position that predicate
// accepts. Runs shorter than windowLength emit nothing — this is not an
// error. Extract never allocates inside its emission loop; fwd and rev are
// the extractor's only scratch state.
//
// Returns sketcherrors.ErrWindowTooLarge if windowLength exceeds
// bitset.MaxK.
func Extract(run nucleotide.Run, windowLength int, mask bitset.Bitset, predicate Predicate, emit func(KMer)) error {
	if windowLength > bitset.MaxK {
		return sketcherrors.ErrWindowTooLarge
	}
	if len(run) < windowLength {
		return nil
	}

	var fwd, rev bitset.Bitset
	for i := 0; i < windowLength-1; i++ {
		fwd = forwardUpdate(fwd, run[i], windowLength)
		rev = reverseUpdate(rev, run[i], windowLength)
	}

	for i := windowLength - 1; i < len(run); i++ {
		c := run[i]
		fwd = forwardUpdate(fwd, c, windowLength)
		rev = reverseUpdate(rev, c, windowLength)

		maskedFwd := fwd.And(mask)
		maskedRev := rev.And(mask)

		var km KMer
		if maskedFwd.Compare(maskedRev) <= 0 {
			km = KMer{WindowLength: windowLength, RawBits: fwd, Mask: mask, MaskedBits: maskedFwd}
		} else {
			km = KMer{WindowLength: windowLength, RawBits: rev, Mask: mask, MaskedBits: maskedRev}
		}

		if predicate(km) {
			emit(km)
		}
	}
	return nil
}
