package motion

import "github.com/jakecoffman/cp"

// popDashStep removes the next queued dash displacement. When the queue
// runs dry the dash is over.
func (s *State) popDashStep() (cp.Vector, bool) {
	if len(s.QueuedDashSteps) == 0 {
		return cp.Vector{}, false
	}
	step := s.QueuedDashSteps[0]
	s.QueuedDashSteps = s.QueuedDashSteps[1:]
	if len(s.QueuedDashSteps) == 0 {
		s.QueuedDashSteps = nil
		s.IsDashing = false
	}
	return step, true
}
