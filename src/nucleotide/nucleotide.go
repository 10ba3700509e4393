// Package nucleotide implements the mapping between ACGT characters and the
// 2-bit codes used throughout the sketching engine, and the splitting of raw
// bytes into runs of codes with no ambiguous bases.
package nucleotide

// Code is a 2-bit nucleotide code in {0,1,2,3}, or 4 as a non-ACGT sentinel.
//
// The encoding is chosen so that:
//  1. complementation is bitwise XOR with 0b11,
//  2. lexicographic order on codes matches lexicographic order on letters,
//  3. non-ACGT detection is a single bit test (bit 2).
type Code uint8

// A, C, G, T are the four nucleotide codes. Ambiguous is the sentinel value
// for any byte that isn't one of the eight ACGT letters (upper or lower case).
const (
	A Code = 0
	C Code = 1
	G Code = 2
	T Code = 3

	Ambiguous Code = 4
)

// Complement returns the complementary code (A<->T, C<->G). The result is
// undefined if c is Ambiguous.
func (c Code) Complement() Code {
	return c ^ 0b11
}

// table maps every byte value to its nucleotide code, built once at init.
var table [256]Code

func init() {
	for i := range table {
		table[i] = Ambiguous
	}
	table['A'], table['a'] = A, A
	table['C'], table['c'] = C, C
	table['G'], table['g'] = G, G
	table['T'], table['t'] = T, T
}

// Encode maps a single byte to its nucleotide code, or Ambiguous if it isn't
// one of ACGT/acgt.
func Encode(b byte) Code {
	return table[b]
}

// Run is an ordered, non-empty sequence of nucleotide codes containing no
// ambiguous bases.
type Run []Code

// Split walks raw bytes and returns the runs of ACGT codes found within,
// breaking the current run at any non-ACGT byte (the offending byte is
// dropped, not included in either run). Empty runs are never emitted.
func Split(raw []byte) []Run {
	var runs []Run
	var current Run

	for _, b := range raw {
		code := Encode(b)
		if code == Ambiguous {
			if len(current) > 0 {
				runs = append(runs, current)
				current = nil
			}
			continue
		}
		current = append(current, code)
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}
