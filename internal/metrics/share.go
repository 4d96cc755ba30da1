package metrics

import "github.com/san-kum/rainfx/internal/rain"

// Share is the fraction of frames matching a predicate.
type Share struct {
	name    string
	match   func(rain.RenderParams) bool
	hits    int
	samples int
}

func NewShare(name string, match func(rain.RenderParams) bool) *Share {
	return &Share{
		name:  name,
		match: match,
	}
}

func (s *Share) Name() string {
	return s.name
}

func (s *Share) Observe(p rain.RenderParams) {
	s.samples++
	if s.match(p) {
		s.hits++
	}
}

func (s *Share) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.samples)
}

func (s *Share) Reset() {
	s.hits = 0
	s.samples = 0
}
