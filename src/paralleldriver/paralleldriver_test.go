package paralleldriver

import (
	"fmt"
	"testing"

	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/kmer"
	"github.com/will-rowe/gani/src/nucleotide"
	"github.com/will-rowe/gani/src/sketcherrors"
)

func acceptAll(kmer.KMer) bool { return true }

func fakeReader(contents map[string]string) ReadRunsFunc {
	return func(path string) ([]nucleotide.Run, error) {
		raw, ok := contents[path]
		if !ok {
			return nil, fmt.Errorf("no such path: %s", path)
		}
		return nucleotide.Split([]byte(raw)), nil
	}
}

// S6: N identical files built with multiple worker threads produce
// sketches equal by len and mutually equal by intersection_count.
func TestScenarioS6(t *testing.T) {
	const n = 8
	contents := make(map[string]string, n)
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("file-%d.fasta", i)
		paths[i] = p
		contents[p] = "ACGGTTCACGGATCCAGTCAGTACGGTTCACGG"
	}
	sketches, err := BuildSketches(paths, bitset.Prefix[5], 5, acceptAll, fakeReader(contents), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sketches[0].Len()
	for i, s := range sketches {
		if s.Len() != want {
			t.Fatalf("sketch %d has len %d, want %d", i, s.Len(), want)
		}
	}
	for i, s := range sketches {
		if got := s.IntersectionCount(sketches[0]); got != want {
			t.Fatalf("sketch %d intersects sketch 0 at %d, want %d", i, got, want)
		}
	}
}

func TestBuildSketchesSequentialMatchesParallel(t *testing.T) {
	contents := map[string]string{
		"a.fasta": "ACGGTTCACGGATCCAGTCAGT",
		"b.fasta": "TTTTGGGGCCCCAAAA",
		"c.fasta": "ACGTACGTACGTACGTACGTACGT",
	}
	paths := []string{"a.fasta", "b.fasta", "c.fasta"}

	seq, err := BuildSketches(paths, bitset.Prefix[6], 6, acceptAll, fakeReader(contents), 1)
	if err != nil {
		t.Fatalf("unexpected error (sequential): %v", err)
	}
	par, err := BuildSketches(paths, bitset.Prefix[6], 6, acceptAll, fakeReader(contents), 4)
	if err != nil {
		t.Fatalf("unexpected error (parallel): %v", err)
	}
	for i := range paths {
		if seq[i].Len() != par[i].Len() {
			t.Fatalf("path %d: sequential len %d != parallel len %d", i, seq[i].Len(), par[i].Len())
		}
	}
}

func TestBuildSketchesPropagatesFirstErrorByIndex(t *testing.T) {
	contents := map[string]string{
		"good.fasta": "ACGTACGTACGT",
	}
	paths := []string{"good.fasta", "missing-1.fasta", "missing-2.fasta"}
	_, err := BuildSketches(paths, bitset.Prefix[4], 4, acceptAll, fakeReader(contents), 2)
	if err == nil {
		t.Fatalf("expected an error when a path cannot be read")
	}
	if err.Error() != "no such path: missing-1.fasta" {
		t.Fatalf("expected the error of the lowest failing index (missing-1.fasta), got %v", err)
	}
}

func TestPairwiseIntersectionsSequentialMatchesParallel(t *testing.T) {
	contents := map[string]string{
		"a.fasta": "ACGGTTCACGGATCCAGTCAGT",
		"b.fasta": "ACGGTTCACGGATCCAGTCAGTTT",
	}
	paths := []string{"a.fasta", "b.fasta"}
	a, err := BuildSketches(paths, bitset.Prefix[6], 6, acceptAll, fakeReader(contents), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, err := PairwiseIntersections(a, a, 1)
	if err != nil {
		t.Fatalf("unexpected error (sequential): %v", err)
	}
	par, err := PairwiseIntersections(a, a, 4)
	if err != nil {
		t.Fatalf("unexpected error (parallel): %v", err)
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("index %d: sequential %d != parallel %d", i, seq[i], par[i])
		}
	}
}

func TestPairwiseIntersectionsRejectsUnequalLengths(t *testing.T) {
	contents := map[string]string{"a.fasta": "ACGTACGT"}
	a, err := BuildSketches([]string{"a.fasta"}, bitset.Prefix[4], 4, acceptAll, fakeReader(contents), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := PairwiseIntersections(a, append(a, a...), 1); err != sketcherrors.ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
