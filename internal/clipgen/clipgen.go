// Package clipgen segments a video of a given duration into overlapping
// fixed-length clip windows, one per whole-second start offset.
//
// A video of d seconds (d >= ClipLength) yields d-ClipLength+1 windows
// starting at 0, 1, ..., d-ClipLength, each ClipLength seconds long.
// Videos shorter than one clip yield none.
package clipgen

import (
	"errors"
	"fmt"
)

// ClipLength is the length of every clip, in seconds.
const ClipLength = 10

// DefaultMaxDuration is the longest accepted video (17 minutes).
const DefaultMaxDuration = 1020

var (
	// ErrTooShort is returned for videos shorter than one clip.
	ErrTooShort = errors.New("video is shorter than one clip")

	// ErrTooLong is returned for videos above the configured maximum.
	ErrTooLong = errors.New("video exceeds maximum duration")
)

// Window is a clip's [Start, End) offset range in whole seconds.
type Window struct {
	Start int
	End   int
}

// Count returns how many windows Windows(d) produces.
func Count(d int) int {
	if d < ClipLength {
		return 0
	}
	return d - ClipLength + 1
}

// Windows returns every clip window for a video of d seconds, ordered by
// start offset.
func Windows(d int) []Window {
	n := Count(d)
	out := make([]Window, n)
	for i := range out {
		out[i] = Window{Start: i, End: i + ClipLength}
	}
	return out
}

// ValidateDuration checks d against [ClipLength, max]. A non-positive max
// means DefaultMaxDuration.
func ValidateDuration(d, max int) error {
	if max <= 0 {
		max = DefaultMaxDuration
	}
	if d < ClipLength {
		return fmt.Errorf("%w: %ds < %ds", ErrTooShort, d, ClipLength)
	}
	if d > max {
		return fmt.Errorf("%w: %ds > %ds", ErrTooLong, d, max)
	}
	return nil
}
