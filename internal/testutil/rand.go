package testutil

// Sequence is a scripted random source. Each Float64 call returns the next
// value; after the last value it keeps returning the final one. An empty
// Sequence always returns 0.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a source that yields values in order.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Calls returns how many values have been consumed.
func (s *Sequence) Calls() int {
	return s.next
}
