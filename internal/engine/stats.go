package engine

// Stats aggregates counters for one session run.
type Stats struct {
	Comparisons int
	Swaps       int
	Score       int
	Mistakes    int
}

// AddScore applies delta, never letting the score drop below zero.
func (s *Stats) AddScore(delta int) {
	s.Score += delta
	if s.Score < 0 {
		s.Score = 0
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}
