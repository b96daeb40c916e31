package piano

import (
	"fmt"

	"github.com/abhisek/solfa/internal/pitch"
)

// Key is one piano key.
type Key struct {
	Note      pitch.Note
	Frequency float64
	Black     bool

	// Binding is the qwerty key that plays this piano key ("" if unbound).
	Binding string
}

// Layout is an ordered run of keys covering whole octaves.
type Layout struct {
	Keys []Key

	byBinding map[string]int
	byNote    map[pitch.Note]int
}

// Qwerty rows per octave, chromatic from C. The lower octave sits on the
// bottom letter row with black keys on the home row; the upper octave uses
// the q-row with black keys on the number row.
var octaveBindings = [][12]string{
	{"z", "s", "x", "d", "c", "v", "g", "b", "h", "n", "j", "m"},
	{"q", "2", "w", "3", "e", "r", "5", "t", "6", "y", "7", "u"},
}

// DefaultLowOctave and DefaultHighOctave bound the standard two-octave keyboard.
const (
	DefaultLowOctave  = 3
	DefaultHighOctave = 4
)

// NewLayout builds keys for octaves lo..hi inclusive.
func NewLayout(lo, hi int) (*Layout, error) {
	if hi < lo {
		return nil, fmt.Errorf("invalid octave range %d..%d", lo, hi)
	}
	l := &Layout{
		byBinding: make(map[string]int),
		byNote:    make(map[pitch.Note]int),
	}
	for octave := lo; octave <= hi; octave++ {
		row := octave - lo
		for i, pc := range pitch.AllPitchClasses() {
			note := pitch.Note{Class: pc, Octave: octave}
			freq, err := note.Frequency()
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", note, err)
			}
			k := Key{Note: note, Frequency: freq, Black: pc.IsAccidental()}
			if row < len(octaveBindings) {
				k.Binding = octaveBindings[row][i]
				l.byBinding[k.Binding] = len(l.Keys)
			}
			l.byNote[note] = len(l.Keys)
			l.Keys = append(l.Keys, k)
		}
	}
	return l, nil
}

// DefaultLayout returns the C3..B4 keyboard.
func DefaultLayout() *Layout {
	l, err := NewLayout(DefaultLowOctave, DefaultHighOctave)
	if err != nil {
		panic(err)
	}
	return l
}

// KeyForBinding returns the key bound to a qwerty key.
func (l *Layout) KeyForBinding(b string) (Key, bool) {
	i, ok := l.byBinding[b]
	if !ok {
		return Key{}, false
	}
	return l.Keys[i], true
}

// KeyForNote returns the key that plays note.
func (l *Layout) KeyForNote(n pitch.Note) (Key, bool) {
	i, ok := l.byNote[n]
	if !ok {
		return Key{}, false
	}
	return l.Keys[i], true
}

// WhiteKeys returns the white keys in order.
func (l *Layout) WhiteKeys() []Key {
	var out []Key
	for _, k := range l.Keys {
		if !k.Black {
			out = append(out, k)
		}
	}
	return out
}
