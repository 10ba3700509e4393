// Package sketch implements the sketch set (component F): a hash-backed
// set of canonical k-mers with size and intersection operations. The set is
// read-only after construction, so it can be shared across parallel tasks
// (src/paralleldriver) without cloning or locking.
package sketch

import "github.com/will-rowe/gani/src/kmer"

// Set is a set of canonical k-mers, keyed by kmer.Key. The Go runtime's
// intrinsic hashing over that comparable struct key is the membership
// hash; it is independent of the explicit hash/maphash-seeded selection
// hash used upstream by src/fracminhash (§9).
type Set struct {
	members map[kmer.Key]struct{}
}

// New returns an empty sketch set.
func New() *Set {
	return &Set{members: make(map[kmer.Key]struct{})}
}

// Insert adds k to the set. Idempotent: a duplicate k-mer (same
// MaskedBits, same Mask) is a no-op.
func (s *Set) Insert(k kmer.KMer) {
	s.members[k.Key()] = struct{}{}
}

// Len returns the number of distinct k-mers retained.
func (s *Set) Len() int {
	return len(s.members)
}

// IntersectionCount returns the number of keys present in both s and
// other. It iterates the smaller set and probes the larger, swapping its
// arguments if needed, per §4.F's implementation policy.
func (s *Set) IntersectionCount(other *Set) int {
	small, large := s, other
	if len(large.members) < len(small.members) {
		small, large = large, small
	}
	count := 0
	for key := range small.members {
		if _, ok := large.members[key]; ok {
			count++
		}
	}
	return count
}
