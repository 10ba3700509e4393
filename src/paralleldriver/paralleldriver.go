// Package paralleldriver is the parallel driver (component H): it builds
// many sketches from many input paths, and computes many pairwise
// intersection counts from pre-built sketches, each using a fixed-size
// pool of worker goroutines draining an indexed job queue — one minion per
// worker, matching the teacher's boss/minion pattern (src/pipeline/boss.go
// in the groot teacher, not carried over verbatim since its domain is read
// alignment, but its "one minion per CPU draining a channel" shape is).
//
// Both operations accept numWorkers <= 1 as an explicit request for the
// sequential fallback (§4.H) used by tests or a debug flag, rather than
// merely running the parallel path with a single worker.
package paralleldriver

import (
	"sync"

	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/kmer"
	"github.com/will-rowe/gani/src/nucleotide"
	"github.com/will-rowe/gani/src/sketch"
	"github.com/will-rowe/gani/src/sketchbuilder"
	"github.com/will-rowe/gani/src/sketcherrors"
)

// ReadRunsFunc is the external FASTA collaborator's contract (§6):
// read_runs(path) -> list<run>.
type ReadRunsFunc func(path string) ([]nucleotide.Run, error)

// BuildSketches builds one sketch per input path. Result order matches
// input order regardless of which worker finished first. If any path
// fails (I/O or a sketchbuilder error), the first such error by input
// index is returned after every sibling task has finished.
func BuildSketches(paths []string, mask bitset.Bitset, windowLength int, predicate kmer.Predicate, readRuns ReadRunsFunc, numWorkers int) ([]*sketch.Set, error) {
	n := len(paths)
	results := make([]*sketch.Set, n)
	errs := make([]error, n)

	build := func(i int) {
		runs, err := readRuns(paths[i])
		if err != nil {
			errs[i] = err
			return
		}
		s, err := sketchbuilder.Build(runs, mask, windowLength, predicate)
		if err != nil {
			errs[i] = err
			return
		}
		results[i] = s
	}

	if numWorkers <= 1 {
		for i := range paths {
			build(i)
		}
		return results, firstError(errs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				build(i)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, firstError(errs)
}

// PairwiseIntersections returns [intersection_count(a[i], b[i])] for every
// i. Precondition: len(a) == len(b), otherwise returns
// sketcherrors.ErrLengthMismatch. Each pair reads two immutable sketches,
// so no synchronization is needed beyond distributing indices to workers.
func PairwiseIntersections(a, b []*sketch.Set, numWorkers int) ([]int, error) {
	if len(a) != len(b) {
		return nil, sketcherrors.ErrLengthMismatch
	}
	n := len(a)
	results := make([]int, n)

	count := func(i int) {
		results[i] = a[i].IntersectionCount(b[i])
	}

	if numWorkers <= 1 {
		for i := 0; i < n; i++ {
			count(i)
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				count(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// firstError returns the first non-nil error by index, or nil if errs
// holds none.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
