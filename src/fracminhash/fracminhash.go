// Package fracminhash implements the one selection predicate the sketching
// engine ships: fractional min-hash with denominator C (component E). A
// canonical k-mer is retained iff H(k) mod C == 0, where H is a hash
// function seeded independently from the membership hash the sketch set
// uses for its map keys (§9's open question on independent hashes).
package fracminhash

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"

	"github.com/will-rowe/gani/src/kmer"
)

// DefaultDenominator is C=200, the default sampling rate (1/200).
const DefaultDenominator = 200

// Predicate is a fractional min-hash selection filter. Its hash seed is
// generated once, at construction, via hash/maphash — stable across every
// call made through this instance, independent of the Go runtime's
// intrinsic map-key hash used for sketch-set membership (src/sketch).
type Predicate struct {
	denominator uint64
	nonce       int64
	seed        maphash.Seed
}

// New constructs a fractional min-hash predicate with denominator C and a
// user-supplied nonce (so independent sketching passes can use independent
// hashes over the same k-mers). C must be >= 1; C=1 retains every k-mer.
func New(denominator int, nonce int64) (*Predicate, error) {
	if denominator < 1 {
		return nil, fmt.Errorf("fracminhash: denominator must be >= 1, got %d", denominator)
	}
	return &Predicate{
		denominator: uint64(denominator),
		nonce:       nonce,
		seed:        maphash.MakeSeed(),
	}, nil
}

// Accept implements kmer.Predicate: it is pure and cheap, called once per
// window position in the extractor's hot loop.
func (p *Predicate) Accept(k kmer.KMer) bool {
	return p.hash(k)%p.denominator == 0
}

// Func adapts Accept to the kmer.Predicate function type expected by
// kmer.Extract.
func (p *Predicate) Func() kmer.Predicate {
	return p.Accept
}

// hash combines (masked_bits, mask, window_length, nonce) under the
// predicate's seed into a single 64-bit value.
func (p *Predicate) hash(k kmer.KMer) uint64 {
	var h maphash.Hash
	h.SetSeed(p.seed)

	masked := k.MaskedBits.Bytes()
	h.Write(masked[:])
	mask := k.Mask.Bytes()
	h.Write(mask[:])

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(k.WindowLength))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(p.nonce))
	h.Write(buf[:])

	return h.Sum64()
}
