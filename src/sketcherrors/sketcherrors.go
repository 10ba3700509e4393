// Package sketcherrors defines the sentinel error kinds surfaced by the
// sketching engine. None of these are swallowed internally — they are
// returned to the caller, who decides whether to halt (see src/misc.ErrorCheck).
package sketcherrors

import "errors"

// ErrWindowTooLarge is returned when a requested window_length exceeds MaxK.
var ErrWindowTooLarge = errors.New("window length exceeds MaxK")

// ErrMaskWidthMismatch is returned when a mask has a set bit at or above
// position 2*window_length.
var ErrMaskWidthMismatch = errors.New("mask has set bits outside the window")

// ErrInvalidSeed is returned by random spaced mask generation when m exceeds
// the window size, or the window size exceeds MaxK.
var ErrInvalidSeed = errors.New("invalid spaced seed parameters")

// ErrLengthMismatch is returned by pairwise intersection when the two input
// lists have unequal length.
var ErrLengthMismatch = errors.New("sketch lists have unequal length")

// ErrIoFailure wraps a failure from the FASTA collaborator to open or read a path.
var ErrIoFailure = errors.New("i/o failure reading input")
