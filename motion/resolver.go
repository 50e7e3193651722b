package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// WallAngleTolerance is the slack in degrees around 90° for wall contacts.
const WallAngleTolerance = 1.0

// ContactClass is the surface type of a resolved contact.
type ContactClass int

const (
	ContactGround ContactClass = iota
	ContactWall
	ContactCeiling
)

func (c ContactClass) String() string {
	switch c {
	case ContactGround:
		return "ground"
	case ContactWall:
		return "wall"
	case ContactCeiling:
		return "ceiling"
	}
	return "unknown"
}

// Classify maps a contact normal to a surface class by its angle to up.
func Classify(normal cp.Vector) ContactClass {
	angle := common.AngleBetween(normal, common.Up)
	switch {
	case angle < 90-WallAngleTolerance:
		return ContactGround
	case angle > 90+WallAngleTolerance:
		return ContactCeiling
	}
	return ContactWall
}

// Resolved is a contact that moved the character this step.
type Resolved struct {
	Contact
	Class ContactClass
}

// Resolver pushes the character out of overlapping shapes one contact at a
// time, in the order the world reports them. Each push is applied before
// the next distance query, so simultaneous contacts are only approximated;
// this is not a simultaneous constraint solve.
type Resolver struct {
	Params Parameters
}

// Box returns the character's collision box for s.
func (r *Resolver) Box(s *State) Box {
	return Box{
		Center:      s.Position,
		HalfExtents: cp.Vector{X: r.Params.Width / 2, Y: r.Params.Height / 2},
	}
}

// Resolve recomputes grounded and wall state from this step's contacts. A
// character that was grounded keeps its footing while the ground stays
// within GroundProbeEpsilon below it and it is not rising.
func (r *Resolver) Resolve(s *State, world World, events *EventQueue) []Resolved {
	wasGrounded := s.IsGrounded
	s.IsGrounded = false
	s.Wall = cp.Vector{}
	if world == nil {
		return nil
	}

	var out []Resolved
	for _, id := range world.OverlapBox(r.Box(s)) {
		c := world.Distance(r.Box(s), id)
		if !c.Overlapping {
			continue
		}
		class := Classify(c.Normal)
		if c.OneWay && (class != ContactGround || s.Velocity.Y > 0) {
			continue
		}

		s.Position = s.Position.Add(c.Separation)
		switch class {
		case ContactGround:
			if s.Velocity.Y <= 0 {
				s.IsGrounded = true
				s.WallJumpsUsed = 0
			}
		case ContactCeiling:
			if s.Velocity.Y > 0 {
				s.Velocity.Y = 0
			}
		case ContactWall:
			r.touchWall(s, c.Normal, events)
		}
		out = append(out, Resolved{Contact: c, Class: class})
	}

	// a grounded dash holds vy at 0 and never sinks into the floor
	if wasGrounded && !s.IsGrounded && s.Velocity.Y <= 0 && r.groundBelow(s, world) {
		s.IsGrounded = true
		s.WallJumpsUsed = 0
	}
	return out
}

// groundBelow reports whether the feet rest within GroundProbeEpsilon of
// ground without overlapping it.
func (r *Resolver) groundBelow(s *State, world World) bool {
	hit, ok := world.CastBox(r.Box(s), cp.Vector{X: 0, Y: -1}, GroundProbeEpsilon)
	return ok && hit.Distance < GroundProbeEpsilon
}

func (r *Resolver) touchWall(s *State, normal cp.Vector, events *EventQueue) {
	s.Wall = normal
	if s.Velocity.Y < 0 {
		s.Velocity.Y *= 1 - r.Params.WallDrag
	}
	// only a wall facing the dash stops it
	if s.IsDashing && normal.X*s.Facing.Sign() < 0 {
		s.cancelDash()
		s.Velocity.X = 0
		events.Push(Event{Kind: EventDashCancelled})
	}
}
