package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/will-rowe/gani/src/bitset"
)

func TestNewANIWriterWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewANIWriter(&buf, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRow("a.fasta", "b.fasta", 0.98, 4, bitset.Prefix[4]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected a header line and a data line, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "file_a,file_b,ani_estimate,window_size,mask" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestNewANIWriterSuppressesHeaderOnAppend(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewANIWriter(&buf, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRow("a.fasta", "b.fasta", 1.0, 4, bitset.Prefix[4]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single data line when appending, got %d: %q", len(lines), buf.String())
	}
}

func TestWriteRowMaskIsMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewANIWriter(&buf, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var mask bitset.Bitset
	mask.SetBit(0)
	mask.SetBit(1)
	if err := w.WriteRow("a.fasta", "b.fasta", 1.0, 1, mask); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), ",11\n") {
		t.Fatalf("expected mask column to render as MSB-first \"11\", got %q", buf.String())
	}
}
