// Package generator builds stimulus sequences.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/nback/internal/model"
)

// Generator produces randomized stimulus sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate draws trials independent stimuli, each position uniform over
// [0, positions) and each letter uniform over letters. Matches between
// trials arise only by chance.
func (g *Generator) Generate(trials, positions int, letters []string) (model.Sequence, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials must be > 0, got %d", trials)
	}
	if positions <= 0 {
		return nil, fmt.Errorf("positions must be > 0, got %d", positions)
	}
	if len(letters) == 0 {
		return nil, fmt.Errorf("letter alphabet is empty")
	}
	seq := make(model.Sequence, 0, trials)
	for i := 0; i < trials; i++ {
		seq = append(seq, model.Stimulus{
			Position: g.rnd.Intn(positions),
			Letter:   letters[g.rnd.Intn(len(letters))],
		})
	}
	return seq, nil
}

// Fixed replays a predetermined sequence. Useful for scripted sessions and tests.
type Fixed model.Sequence

// Generate returns a copy of the fixed sequence when it fits the request.
func (f Fixed) Generate(trials, positions int, letters []string) (model.Sequence, error) {
	if len(f) != trials {
		return nil, fmt.Errorf("fixed sequence has %d trials, want %d", len(f), trials)
	}
	allowed := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		allowed[l] = struct{}{}
	}
	for i, s := range f {
		if s.Position < 0 || s.Position >= positions {
			return nil, fmt.Errorf("trial %d: position %d outside [0, %d)", i, s.Position, positions)
		}
		if _, ok := allowed[s.Letter]; !ok {
			return nil, fmt.Errorf("trial %d: letter %q not in alphabet", i, s.Letter)
		}
	}
	out := make(model.Sequence, len(f))
	copy(out, f)
	return out, nil
}
