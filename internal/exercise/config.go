package exercise

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrLengthOutOfRange is returned when an exercise length falls outside
// the configured bounds.
var ErrLengthOutOfRange = errors.New("exercise length out of range")

// Config bounds the exercise length.
type Config struct {
	// MinLength is the shortest allowed exercise.
	MinLength int

	// MaxLength is the longest allowed exercise.
	MaxLength int

	// DefaultLength is used when no length has been chosen yet.
	DefaultLength int
}

// DefaultConfig returns the standard 2..10 range with 5 notes by default.
func DefaultConfig() Config {
	return Config{
		MinLength:     2,
		MaxLength:     10,
		DefaultLength: 5,
	}
}

// Validate returns ErrLengthOutOfRange if n is outside [MinLength, MaxLength].
func (c Config) Validate(n int) error {
	if n < c.MinLength || n > c.MaxLength {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLengthOutOfRange, n, c.MinLength, c.MaxLength)
	}
	return nil
}

// Clamp forces n into [MinLength, MaxLength].
func (c Config) Clamp(n int) int {
	return clamp(n, c.MinLength, c.MaxLength)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
