package flappy

// ScoreTracker counts passed gaps and publishes every change.
type ScoreTracker struct {
	value    int
	listener func(int)
}

// OnChange registers the function called with the new value after every
// change. Passing nil removes the listener.
func (s *ScoreTracker) OnChange(fn func(int)) {
	s.listener = fn
}

// Value returns the current score.
func (s *ScoreTracker) Value() int {
	return s.value
}

// Reset sets the score to zero.
func (s *ScoreTracker) Reset() {
	s.value = 0
	s.publish()
}

// Increment adds one point.
func (s *ScoreTracker) Increment() {
	s.value++
	s.publish()
}

func (s *ScoreTracker) publish() {
	if s.listener != nil {
		s.listener(s.value)
	}
}
