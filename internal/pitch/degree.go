package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDegree is returned for names outside the seven solfège syllables.
var ErrUnknownDegree = errors.New("unknown degree")

// Degree is a solfège syllable naming a scale step relative to a key.
type Degree string

const (
	Do  Degree = "do"
	Re  Degree = "re"
	Mi  Degree = "mi"
	Fa  Degree = "fa"
	Sol Degree = "sol"
	La  Degree = "la"
	Si  Degree = "si"
)

var degrees = [...]Degree{Do, Re, Mi, Fa, Sol, La, Si}

// degreeOffset is the major-scale semitone offset of each degree from the tonic.
var degreeOffset = map[Degree]int{
	Do:  0,
	Re:  2,
	Mi:  4,
	Fa:  5,
	Sol: 7,
	La:  9,
	Si:  11,
}

// AllDegrees returns the seven degrees in scale order.
func AllDegrees() []Degree {
	out := make([]Degree, len(degrees))
	copy(out, degrees[:])
	return out
}

// ParseDegree validates a degree name (case-insensitive). "ti" is accepted
// as an alias for "si".
func ParseDegree(s string) (Degree, error) {
	d := Degree(strings.ToLower(strings.TrimSpace(s)))
	if d == "ti" {
		d = Si
	}
	if _, ok := degreeOffset[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDegree, s)
	}
	return d, nil
}

// Offset returns the semitone offset of d from the tonic.
func (d Degree) Offset() (int, error) {
	off, ok := degreeOffset[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDegree, string(d))
	}
	return off, nil
}

func (d Degree) String() string {
	return string(d)
}

// ResolveDegree returns the pitch class reached by stepping degree up from key.
func ResolveDegree(key PitchClass, degree Degree) (PitchClass, error) {
	idx := key.Index()
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownPitchClass, string(key))
	}
	off, err := degree.Offset()
	if err != nil {
		return "", err
	}
	return pitchClassAt(idx + off), nil
}
