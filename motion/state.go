package motion

import "github.com/jakecoffman/cp"

// Facing is the horizontal orientation of a character.
type Facing int

const (
	Left  Facing = -1
	Right Facing = 1
)

func (f Facing) String() string {
	if f == Left {
		return "left"
	}
	return "right"
}

// Sign returns -1 or +1.
func (f Facing) Sign() float64 {
	if f == Left {
		return -1
	}
	return 1
}

// State is the mutable motion state of one character.
type State struct {
	Position cp.Vector
	Velocity cp.Vector
	Facing   Facing

	IsGrounded    bool
	IsDashing     bool
	DashElapsed   float64
	WallJumpsUsed int

	// QueuedDashSteps is only used by DashQueued.
	QueuedDashSteps []cp.Vector

	// Wall is the normal of the wall touched during the last resolution,
	// zero when none.
	Wall cp.Vector

	coyoteLeft   float64
	jumpBuffered float64
}

// NewState returns the spawn state at position.
func NewState(position cp.Vector) State {
	return State{
		Position:   position,
		Facing:     Right,
		IsGrounded: true,
	}
}

// TouchingWall reports whether the last resolution touched a wall.
func (s State) TouchingWall() bool {
	return s.Wall.X != 0 || s.Wall.Y != 0
}

func (s *State) cancelDash() {
	s.IsDashing = false
	s.DashElapsed = 0
	s.QueuedDashSteps = s.QueuedDashSteps[:0]
}

// clone copies the state without aliasing the dash queue.
func (s State) clone() State {
	if s.QueuedDashSteps != nil {
		s.QueuedDashSteps = append([]cp.Vector(nil), s.QueuedDashSteps...)
	}
	return s
}
