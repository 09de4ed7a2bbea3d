// Package generator builds randomized arrays for practice sessions.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tuisort/internal/engine"
)

// Generator produces randomized arrays.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Array fills size slots with uniform values in [minVal, maxVal].
func (g *Generator) Array(size, minVal, maxVal int) (engine.Array, error) {
	return engine.NewRandom(g.rnd, size, minVal, maxVal)
}

// Fixed replays the same values on every call. Useful for lessons and fixtures.
type Fixed []int

// Array returns a copy of the fixed values; size and bounds are ignored.
func (f Fixed) Array(_, _, _ int) (engine.Array, error) {
	return engine.Array(f).Clone(), nil
}
