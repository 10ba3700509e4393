// Package reporting is the CSV collaborator (§6, §4.K): it writes one row
// per file pair, with a fixed column order and a header that is written
// once unless the writer is opened in append mode.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/will-rowe/gani/src/bitset"
)

// header is the fixed CSV column order (§6).
var header = []string{"file_a", "file_b", "ani_estimate", "window_size", "mask"}

// ANIWriter streams ANI result rows to an io.Writer as CSV.
type ANIWriter struct {
	csv *csv.Writer
}

// NewANIWriter wraps w in a CSV writer. If append is false, the header row
// is written immediately; if true, the header is suppressed, matching
// "header present on first write, suppressed on append" (§6).
func NewANIWriter(w io.Writer, append bool) (*ANIWriter, error) {
	aw := &ANIWriter{csv: csv.NewWriter(w)}
	if !append {
		if err := aw.csv.Write(header); err != nil {
			return nil, fmt.Errorf("reporting: writing header: %w", err)
		}
		aw.csv.Flush()
		if err := aw.csv.Error(); err != nil {
			return nil, err
		}
	}
	return aw, nil
}

// WriteRow writes one (file_a, file_b, ani_estimate, window_size, mask)
// row. mask is serialized MSB-first over its informative window, via
// bitset.Bitset.StringN.
func (w *ANIWriter) WriteRow(fileA, fileB string, aniEstimate float64, windowSize int, mask bitset.Bitset) error {
	row := []string{
		fileA,
		fileB,
		fmt.Sprintf("%.6f", aniEstimate),
		fmt.Sprintf("%d", windowSize),
		mask.StringN(2 * windowSize),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("reporting: writing row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}
