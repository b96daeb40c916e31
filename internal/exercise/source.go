package exercise

import (
	"math/rand/v2"

	"github.com/abhisek/solfa/internal/pitch"
)

// DegreeSource supplies the degrees of a new exercise.
type DegreeSource interface {
	NextDegree() pitch.Degree
}

// RandomSource draws degrees uniformly, with replacement.
type RandomSource struct {
	rng     *rand.Rand
	degrees []pitch.Degree
}

// NewRandomSource creates a RandomSource. A nil rng uses a randomly seeded
// generator.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomSource{rng: rng, degrees: pitch.AllDegrees()}
}

func (s *RandomSource) NextDegree() pitch.Degree {
	return s.degrees[s.rng.IntN(len(s.degrees))]
}

// FixedSource replays a fixed degree sequence, wrapping around at the end.
type FixedSource struct {
	Degrees []pitch.Degree
	next    int
}

// NewFixedSource creates a FixedSource over degrees.
func NewFixedSource(degrees ...pitch.Degree) *FixedSource {
	return &FixedSource{Degrees: degrees}
}

func (s *FixedSource) NextDegree() pitch.Degree {
	if len(s.Degrees) == 0 {
		return pitch.Do
	}
	d := s.Degrees[s.next%len(s.Degrees)]
	s.next++
	return d
}
