// Package seqio is the FASTA collaborator (§6, §4.J): it turns a file path
// into the list of ACGT runs the sketching engine consumes, transparently
// handling gzip compression and archive bundles of assemblies.
package seqio

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/mholt/archiver"

	"github.com/will-rowe/gani/src/nucleotide"
	"github.com/will-rowe/gani/src/sketcherrors"
)

// archiveSuffixes lists the extensions recognised as archive bundles of
// assemblies, supplementing the bare-file-path contract in the original
// spec: a batch ANI tool is commonly pointed at a directory tarball.
var archiveSuffixes = []string{".tar", ".tar.gz", ".tgz", ".zip"}

// fastaSuffixes lists the extensions accepted for an archive member.
var fastaSuffixes = []string{".fa", ".fasta", ".fna", ".fa.gz", ".fasta.gz", ".fna.gz"}

// ReadRuns implements read_runs(path) -> list<run> (§6). If path is a
// recognised archive it is expanded in place and every FASTA member is
// read; otherwise path is opened directly, transparently gunzipped if it
// ends in .gz, and parsed as a single FASTA file. Any I/O failure is
// wrapped in sketcherrors.ErrIoFailure. Records whose header contains a
// space are dropped (§6's pre-existing, flagged-as-suspicious contract).
func ReadRuns(path string) ([]nucleotide.Run, error) {
	if hasAnySuffix(path, archiveSuffixes) {
		return readArchive(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", sketcherrors.ErrIoFailure, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: gunzipping %s: %v", sketcherrors.ErrIoFailure, path, err)
		}
		defer gz.Close()
		r = gz
	}

	runs, err := parseFASTA(r, path)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", sketcherrors.ErrIoFailure, path, err)
	}
	return runs, nil
}

// readArchive streams every FASTA-looking member of an archive and
// concatenates their runs, recursing into each as an independent FASTA
// source.
func readArchive(path string) ([]nucleotide.Run, error) {
	var runs []nucleotide.Run
	err := archiver.Walk(path, func(f archiver.File) error {
		defer f.Close()
		if f.IsDir() || !hasAnySuffix(f.Name(), fastaSuffixes) {
			return nil
		}
		var r io.Reader = f
		if strings.HasSuffix(f.Name(), ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return err
			}
			defer gz.Close()
			r = gz
		}
		memberRuns, err := parseFASTA(r, f.Name())
		if err != nil {
			return err
		}
		runs = append(runs, memberRuns...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: unpacking %s: %v", sketcherrors.ErrIoFailure, path, err)
	}
	return runs, nil
}

// parseFASTA reads every record from r with biogo's FASTA reader, drops
// records whose header contains a space, and splits the rest into ACGT
// runs via the nucleotide encoder (component A).
func parseFASTA(r io.Reader, sourceName string) ([]nucleotide.Run, error) {
	template := linear.NewSeq("", nil, alphabet.DNA)
	reader := fasta.NewReader(r, template)

	var runs []nucleotide.Run
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		seq, ok := s.(*linear.Seq)
		if !ok {
			continue
		}
		// biogo splits the header line into ID and Desc at the first
		// space; a non-empty Desc means the original header contained a
		// space, so the record is dropped (§6).
		if seq.Annotation.Desc != "" {
			log.Printf("seqio: dropping record %q from %s (header contains a space)", seq.Annotation.ID, sourceName)
			continue
		}
		raw := make([]byte, len(seq.Seq))
		for i, l := range seq.Seq {
			raw[i] = byte(l)
		}
		recordRuns := nucleotide.Split(raw)
		if n := runLength(recordRuns); n != len(raw) {
			log.Printf("seqio: record %q in %s has %d non-ACGT bases, split into %d runs", seq.Annotation.ID, sourceName, len(raw)-n, len(recordRuns))
		}
		runs = append(runs, recordRuns...)
	}
	return runs, nil
}

func runLength(runs []nucleotide.Run) int {
	n := 0
	for _, r := range runs {
		n += len(r)
	}
	return n
}

func hasAnySuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
