package motion

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

const (
	// GroundProbeEpsilon is how close the ground must be below the feet for
	// the ground-proximity guard to block a wall-jump, and for a grounded
	// character to stay grounded without overlapping the floor.
	GroundProbeEpsilon = 0.05
	// GroundProbeReach bounds the downward cast of the ground-proximity guard.
	GroundProbeReach = 1000.0

	minJumpCutFactor = 0.5
)

// Integrator computes the next velocity from input, gravity and the
// grounded/wall state left by the previous resolution.
type Integrator struct {
	Params Parameters
}

// Integrate updates s.Velocity, facing, dash and jump state for one step of
// dt seconds. The returned error is an anomaly, never a failure: the step
// is always fully applied.
func (it *Integrator) Integrate(s *State, in Signals, world World, dt float64, events *EventQueue) error {
	p := it.Params
	it.tickTimers(s, in, dt)

	if in.Axis != 0 && (!s.IsDashing || p.MoveWhileDashing) {
		if in.Axis > 0 {
			s.Facing = Right
		} else {
			s.Facing = Left
		}
	}

	if in.Dash && (s.IsGrounded || p.DashJumpingAllowed) {
		it.startDash(s, events)
	}

	it.integrateHorizontal(s, in, dt)
	anomaly := it.integrateVertical(s, in, world, dt, events)

	if s.IsDashing && p.DashMode == DashEased {
		s.DashElapsed += dt
		if s.DashElapsed >= p.DashDuration {
			s.IsDashing = false
			s.DashElapsed = 0
			events.Push(Event{Kind: EventDashEnded})
		}
	}
	return anomaly
}

func (it *Integrator) tickTimers(s *State, in Signals, dt float64) {
	if s.IsGrounded {
		s.coyoteLeft = it.Params.CoyoteTime
	} else {
		s.coyoteLeft = math.Max(0, s.coyoteLeft-dt)
	}
	if in.JumpPressed {
		s.jumpBuffered = it.Params.JumpBufferTime
	} else {
		s.jumpBuffered = math.Max(0, s.jumpBuffered-dt)
	}
}

func (it *Integrator) startDash(s *State, events *EventQueue) {
	p := it.Params
	switch p.DashMode {
	case DashQueued:
		if len(s.QueuedDashSteps) > 0 {
			return
		}
		n := int(math.Floor(p.DashDuration/p.DashDistanceIncrement + 1e-9))
		if n <= 0 {
			return
		}
		step := cp.Vector{X: s.Facing.Sign() * p.DashSpeed * p.DashDistanceIncrement}
		for i := 0; i < n; i++ {
			s.QueuedDashSteps = append(s.QueuedDashSteps, step)
		}
	default:
		if s.IsDashing || p.DashDuration <= 0 {
			return
		}
		s.DashElapsed = 0
	}
	s.IsDashing = true
	events.Push(Event{Kind: EventDashStarted, Duration: p.DashDuration})
}

func (it *Integrator) integrateHorizontal(s *State, in Signals, dt float64) {
	p := it.Params
	accel := p.AirAcceleration
	if s.IsGrounded {
		accel = p.GroundAcceleration
	}
	vx := s.Velocity.X

	switch {
	case s.IsDashing && p.DashMode == DashEased:
		vx = common.MoveTowards(vx, s.Facing.Sign()*p.DashSpeed, accel*dt)
	case s.IsDashing && !p.MoveWhileDashing:
		// queued steps carry the dash displacement
		vx = 0
	case in.Axis != 0:
		speed := p.MaxWalkSpeed
		if in.Sprint {
			speed = p.MaxSprintSpeed
		}
		vx = common.MoveTowards(vx, speed*in.Axis, accel*dt)
	case s.IsGrounded:
		vx = common.MoveTowards(vx, 0, p.GroundDeceleration*dt)
	}
	s.Velocity.X = vx
}

func (it *Integrator) integrateVertical(s *State, in Signals, world World, dt float64, events *EventQueue) error {
	p := it.Params
	if s.IsDashing {
		s.Velocity.Y = 0
		return nil
	}

	if s.IsGrounded {
		s.Velocity.Y = 0
	}

	var anomaly error
	wantJump := in.JumpPressed || s.jumpBuffered > 0
	switch {
	case wantJump && (s.IsGrounded || s.coyoteLeft > 0):
		s.Velocity.Y = p.JumpVelocity()
		s.coyoteLeft = 0
		s.jumpBuffered = 0
		events.Push(Event{Kind: EventJumped})
		return nil
	case in.JumpPressed && !s.IsGrounded && s.TouchingWall() && s.WallJumpsUsed < p.MaxWallJumps:
		var blocked bool
		blocked, anomaly = it.nearGround(s, world)
		if !blocked {
			s.Velocity.X = -s.Velocity.X * p.WallJumpBoost
			s.Velocity.Y = p.JumpVelocity()
			s.WallJumpsUsed++
			s.jumpBuffered = 0
			events.Push(Event{Kind: EventWallJumped})
			return anomaly
		}
	}

	if in.JumpReleased && s.Velocity.Y > 0 {
		s.Velocity.Y *= math.Max(in.JumpHeld, minJumpCutFactor)
	}

	scale := p.FallGravityScale
	if s.Velocity.Y > 0 {
		scale = p.RiseGravityScale
	}
	s.Velocity.Y += p.Gravity * scale * dt
	return anomaly
}

// nearGround casts a box one third of the character width down from the
// feet. A miss means the character left the collidable world.
func (it *Integrator) nearGround(s *State, world World) (bool, error) {
	if world == nil {
		return false, nil
	}
	box := Box{
		Center:      s.Position,
		HalfExtents: cp.Vector{X: it.Params.Width / 6, Y: it.Params.Height / 2},
	}
	hit, ok := world.CastBox(box, cp.Vector{X: 0, Y: -1}, GroundProbeReach)
	if !ok {
		return false, fmt.Errorf("%w below (%.3f, %.3f)", ErrNoGroundBelow, s.Position.X, s.Position.Y)
	}
	return hit.Distance < GroundProbeEpsilon, nil
}
