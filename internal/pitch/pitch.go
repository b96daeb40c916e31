package pitch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// ReferenceFrequency is the tuning reference A4 in Hz.
	ReferenceFrequency = 440.0

	// ReferenceOctave is the octave of the tuning reference.
	ReferenceOctave = 4

	semitonesPerOctave = 12
)

var (
	// ErrUnknownPitchClass is returned for names outside the chromatic scale.
	ErrUnknownPitchClass = errors.New("unknown pitch class")

	// ErrInvalidNote is returned when a note string cannot be parsed.
	ErrInvalidNote = errors.New("invalid note")
)

// PitchClass is one of the 12 chromatic note names within an octave.
type PitchClass string

const (
	C      PitchClass = "C"
	CSharp PitchClass = "C#"
	D      PitchClass = "D"
	DSharp PitchClass = "D#"
	E      PitchClass = "E"
	F      PitchClass = "F"
	FSharp PitchClass = "F#"
	G      PitchClass = "G"
	GSharp PitchClass = "G#"
	A      PitchClass = "A"
	ASharp PitchClass = "A#"
	B      PitchClass = "B"
)

// chromatic lists pitch classes in ascending order starting at C.
var chromatic = [semitonesPerOctave]PitchClass{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}

// offsetFromA maps each pitch class to its semitone distance from A
// within the same octave.
var offsetFromA = map[PitchClass]int{
	C: -9, CSharp: -8, D: -7, DSharp: -6,
	E: -5, F: -4, FSharp: -3, G: -2,
	GSharp: -1, A: 0, ASharp: 1, B: 2,
}

// AllPitchClasses returns the chromatic scale starting at C.
func AllPitchClasses() []PitchClass {
	out := make([]PitchClass, len(chromatic))
	copy(out[:], chromatic[:])
	return out
}

// ParsePitchClass validates a pitch class name. Matching is
// case-insensitive on the letter; "c#" and "C#" are both accepted.
func ParsePitchClass(s string) (PitchClass, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownPitchClass)
	}
	pc := PitchClass(strings.ToUpper(s[:1]) + s[1:])
	if _, ok := offsetFromA[pc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPitchClass, s)
	}
	return pc, nil
}

// Valid reports whether pc is one of the 12 chromatic names.
func (pc PitchClass) Valid() bool {
	_, ok := offsetFromA[pc]
	return ok
}

// Index returns the chromatic index of pc (C=0 … B=11), or -1 if unknown.
func (pc PitchClass) Index() int {
	off, ok := offsetFromA[pc]
	if !ok {
		return -1
	}
	return off + 9
}

// IsAccidental reports whether pc is a black key.
func (pc PitchClass) IsAccidental() bool {
	return strings.HasSuffix(string(pc), "#")
}

func (pc PitchClass) String() string {
	return string(pc)
}

// pitchClassAt maps any integer to a pitch class, reducing modulo 12.
func pitchClassAt(i int) PitchClass {
	i %= semitonesPerOctave
	if i < 0 {
		i += semitonesPerOctave
	}
	return chromatic[i]
}

// FrequencyOf returns the equal-tempered frequency in Hz of pc in the given
// octave, relative to A4 = 440 Hz.
func FrequencyOf(pc PitchClass, octave int) (float64, error) {
	off, ok := offsetFromA[pc]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitchClass, string(pc))
	}
	n := off + (octave-ReferenceOctave)*semitonesPerOctave
	return ReferenceFrequency * math.Pow(2, float64(n)/semitonesPerOctave), nil
}

// Note is a pitch class placed in an octave, e.g. C#4.
type Note struct {
	Class  PitchClass
	Octave int
}

// ParseNote parses scientific pitch notation such as "C4", "f#3" or "A-1".
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return r == '-' || (r >= '0' && r <= '9')
	})
	if i <= 0 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	pc, err := ParsePitchClass(s[:i])
	if err != nil {
		return Note{}, err
	}
	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return Note{}, fmt.Errorf("%w: %q: bad octave", ErrInvalidNote, s)
	}
	return Note{Class: pc, Octave: octave}, nil
}

// NoteFromMIDI converts a MIDI note number (C4 = 60) into a Note.
func NoteFromMIDI(n int) Note {
	return Note{
		Class:  pitchClassAt(n),
		Octave: floorDiv(n, semitonesPerOctave) - 1,
	}
}

// MIDI returns the MIDI note number of n (C4 = 60).
func (n Note) MIDI() int {
	return (n.Octave+1)*semitonesPerOctave + n.Class.Index()
}

// Frequency returns the frequency of n in Hz.
func (n Note) Frequency() (float64, error) {
	return FrequencyOf(n.Class, n.Octave)
}

// Transpose shifts n by the given number of semitones.
func (n Note) Transpose(semitones int) Note {
	return NoteFromMIDI(n.MIDI() + semitones)
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
