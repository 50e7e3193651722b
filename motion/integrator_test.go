package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestIntegrateHorizontal(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		vx       float64
		in       Signals
		want     float64
	}{
		{"accelerate_without_overshoot", true, 0, Signals{Axis: 1}, 5},
		{"reach_walk_speed", true, 8, Signals{Axis: 1}, 10},
		{"sprint_target", true, 10, Signals{Axis: 1, Sprint: true}, 15},
		{"ground_deceleration", true, 10, Signals{}, 2},
		{"no_air_deceleration", false, 5, Signals{}, 5},
		{"air_acceleration", false, 0, Signals{Axis: -1}, -3},
		{"half_axis", true, 0, Signals{Axis: 0.5}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParameters()
			p.MaxWalkSpeed = 10
			p.MaxSprintSpeed = 16
			p.GroundAcceleration = 50
			p.GroundDeceleration = 80
			p.AirAcceleration = 30
			it := Integrator{Params: p}
			s := NewState(cp.Vector{})
			s.IsGrounded = c.grounded
			s.Velocity.X = c.vx
			var q EventQueue
			_ = it.Integrate(&s, c.in, nil, 0.1, &q)
			if !near(s.Velocity.X, c.want, 1e-9) {
				t.Fatalf("velocity.x = %v, want %v", s.Velocity.X, c.want)
			}
		})
	}
}

func TestFacingFollowsAxis(t *testing.T) {
	it := Integrator{Params: DefaultParameters()}
	s := NewState(cp.Vector{})
	var q EventQueue

	_ = it.Integrate(&s, Signals{Axis: -0.3}, nil, 0.016, &q)
	if s.Facing != Left {
		t.Fatalf("facing = %v, want left", s.Facing)
	}
	_ = it.Integrate(&s, Signals{}, nil, 0.016, &q)
	if s.Facing != Left {
		t.Fatalf("facing should persist with zero axis, got %v", s.Facing)
	}
}

func TestGroundJumpVelocity(t *testing.T) {
	p := DefaultParameters()
	p.JumpHeight = 5
	p.Gravity = -9.81
	it := Integrator{Params: p}
	s := NewState(cp.Vector{})
	var q EventQueue

	_ = it.Integrate(&s, Signals{JumpPressed: true, JumpHeld: 1}, nil, 1.0/60, &q)
	if !near(s.Velocity.Y, 9.905, 1e-3) {
		t.Fatalf("velocity.y = %v, want ~9.905", s.Velocity.Y)
	}
	evts := q.Drain()
	if len(evts) != 1 || evts[0].Kind != EventJumped {
		t.Fatalf("expected a single jumped event, got %v", evts)
	}
}

func TestGroundedResetsVerticalVelocity(t *testing.T) {
	p := DefaultParameters()
	it := Integrator{Params: p}
	s := NewState(cp.Vector{})
	s.Velocity.Y = -30
	var q EventQueue

	dt := 0.01
	_ = it.Integrate(&s, Signals{}, nil, dt, &q)
	if !near(s.Velocity.Y, p.Gravity*dt, 1e-12) {
		t.Fatalf("velocity.y = %v, want %v", s.Velocity.Y, p.Gravity*dt)
	}
}

func TestVariableJumpCut(t *testing.T) {
	cases := []struct {
		name string
		held float64
		vy   float64
		want float64
	}{
		{"tap_floor", 0, 8, 4},
		{"held_magnitude", 0.75, 8, 6},
		{"falling_untouched", 0, -2, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParameters()
			it := Integrator{Params: p}
			s := NewState(cp.Vector{})
			s.IsGrounded = false
			s.Velocity.Y = c.vy
			var q EventQueue
			dt := 0.01
			_ = it.Integrate(&s, Signals{JumpReleased: true, JumpHeld: c.held}, nil, dt, &q)
			want := c.want + p.Gravity*dt
			if !near(s.Velocity.Y, want, 1e-9) {
				t.Fatalf("velocity.y = %v, want %v", s.Velocity.Y, want)
			}
		})
	}
}

func TestGravityScales(t *testing.T) {
	p := DefaultParameters()
	p.RiseGravityScale = 2
	p.FallGravityScale = 3
	it := Integrator{Params: p}
	var q EventQueue
	dt := 0.1

	rising := NewState(cp.Vector{})
	rising.IsGrounded = false
	rising.Velocity.Y = 5
	_ = it.Integrate(&rising, Signals{}, nil, dt, &q)
	if want := 5 + p.Gravity*2*dt; !near(rising.Velocity.Y, want, 1e-9) {
		t.Fatalf("rising velocity.y = %v, want %v", rising.Velocity.Y, want)
	}

	falling := NewState(cp.Vector{})
	falling.IsGrounded = false
	falling.Velocity.Y = -1
	_ = it.Integrate(&falling, Signals{}, nil, dt, &q)
	if want := -1 + p.Gravity*3*dt; !near(falling.Velocity.Y, want, 1e-9) {
		t.Fatalf("falling velocity.y = %v, want %v", falling.Velocity.Y, want)
	}
}

func TestCoyoteAndJumpBuffer(t *testing.T) {
	p := DefaultParameters()
	p.CoyoteTime = 0.1
	p.JumpBufferTime = 0.1
	it := Integrator{Params: p}
	var q EventQueue
	dt := 0.02

	t.Run("coyote", func(t *testing.T) {
		s := NewState(cp.Vector{})
		_ = it.Integrate(&s, Signals{}, nil, dt, &q)
		s.IsGrounded = false
		_ = it.Integrate(&s, Signals{}, nil, dt, &q)
		_ = it.Integrate(&s, Signals{JumpPressed: true}, nil, dt, &q)
		if !near(s.Velocity.Y, p.JumpVelocity(), 1e-9) {
			t.Fatalf("expected coyote jump, velocity.y = %v", s.Velocity.Y)
		}
	})

	t.Run("buffer", func(t *testing.T) {
		s := NewState(cp.Vector{})
		s.IsGrounded = false
		s.Velocity.Y = -3
		_ = it.Integrate(&s, Signals{JumpPressed: true}, nil, dt, &q)
		if s.Velocity.Y > 0 {
			t.Fatalf("should not jump in the air without coyote time")
		}
		s.IsGrounded = true
		_ = it.Integrate(&s, Signals{}, nil, dt, &q)
		if !near(s.Velocity.Y, p.JumpVelocity(), 1e-9) {
			t.Fatalf("expected buffered jump on landing, velocity.y = %v", s.Velocity.Y)
		}
	})
}

func TestEasedDash(t *testing.T) {
	p := DefaultParameters()
	p.DashSpeed = 30
	p.DashDuration = 0.3
	p.GroundAcceleration = 100
	p.AirAcceleration = 100
	it := Integrator{Params: p}
	var q EventQueue
	dt := 0.1

	s := NewState(cp.Vector{})
	_ = it.Integrate(&s, Signals{Dash: true}, nil, dt, &q)
	if !s.IsDashing {
		t.Fatalf("expected dash to start")
	}
	if !near(s.Velocity.X, 10, 1e-9) || s.Velocity.Y != 0 {
		t.Fatalf("velocity = %v, want eased (10, 0)", s.Velocity)
	}
	if evts := q.Drain(); len(evts) != 1 || evts[0].Kind != EventDashStarted || evts[0].Duration != 0.3 {
		t.Fatalf("unexpected events %v", evts)
	}

	s.IsGrounded = false
	_ = it.Integrate(&s, Signals{}, nil, dt, &q)
	if s.Velocity.Y != 0 {
		t.Fatalf("gravity should be suppressed while dashing, velocity.y = %v", s.Velocity.Y)
	}
	_ = it.Integrate(&s, Signals{}, nil, dt, &q)
	if s.IsDashing {
		t.Fatalf("dash should end after its duration, elapsed=%v", s.DashElapsed)
	}
	evts := q.Drain()
	if len(evts) == 0 || evts[len(evts)-1].Kind != EventDashEnded {
		t.Fatalf("expected dash_ended, got %v", evts)
	}
}

func TestDashGate(t *testing.T) {
	cases := []struct {
		name    string
		allowed bool
		want    bool
	}{
		{"air_dash_blocked", false, false},
		{"air_dash_allowed", true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParameters()
			p.DashJumpingAllowed = c.allowed
			it := Integrator{Params: p}
			s := NewState(cp.Vector{})
			s.IsGrounded = false
			var q EventQueue
			_ = it.Integrate(&s, Signals{Dash: true}, nil, 0.01, &q)
			if s.IsDashing != c.want {
				t.Fatalf("isDashing = %v, want %v", s.IsDashing, c.want)
			}
		})
	}
}

func TestQueuedDash(t *testing.T) {
	p := DefaultParameters()
	p.DashMode = DashQueued
	p.DashDuration = 1.0
	p.DashDistanceIncrement = 0.5
	p.DashSpeed = 4
	it := Integrator{Params: p}
	var q EventQueue

	s := NewState(cp.Vector{})
	s.Facing = Left
	_ = it.Integrate(&s, Signals{Dash: true}, nil, 0.01, &q)
	if len(s.QueuedDashSteps) != 2 {
		t.Fatalf("expected 2 queued steps, got %d", len(s.QueuedDashSteps))
	}
	for i, step := range s.QueuedDashSteps {
		if !near(step.X, -2, 1e-12) || step.Y != 0 {
			t.Fatalf("step %d = %v, want (-2, 0)", i, step)
		}
	}

	if _, ok := s.popDashStep(); !ok {
		t.Fatalf("expected a queued step")
	}
	_ = it.Integrate(&s, Signals{Dash: true}, nil, 0.01, &q)
	if len(s.QueuedDashSteps) != 1 {
		t.Fatalf("re-trigger mid dash should be ignored, queue len %d", len(s.QueuedDashSteps))
	}
	if _, ok := s.popDashStep(); !ok || s.IsDashing {
		t.Fatalf("dash should end once the queue is empty")
	}
}

func TestWallJump(t *testing.T) {
	p := DefaultParameters()
	p.WallJumpBoost = 1.5
	p.MaxWallJumps = 1

	airborne := func() State {
		s := NewState(cp.Vector{X: 0, Y: 10})
		s.IsGrounded = false
		s.Velocity = cp.Vector{X: 4, Y: -2}
		s.Wall = cp.Vector{X: -1}
		return s
	}

	t.Run("reflects_and_boosts", func(t *testing.T) {
		w := &boxWorld{}
		w.add(-50, -10, 50, 0)
		it := Integrator{Params: p}
		s := airborne()
		var q EventQueue
		if err := it.Integrate(&s, Signals{JumpPressed: true}, w, 0.01, &q); err != nil {
			t.Fatalf("unexpected anomaly: %v", err)
		}
		if !near(s.Velocity.X, -6, 1e-9) || !near(s.Velocity.Y, p.JumpVelocity(), 1e-9) {
			t.Fatalf("velocity = %v", s.Velocity)
		}
		if s.WallJumpsUsed != 1 {
			t.Fatalf("wallJumpsUsed = %d, want 1", s.WallJumpsUsed)
		}

		s.Velocity = cp.Vector{X: 4, Y: -2}
		_ = it.Integrate(&s, Signals{JumpPressed: true}, w, 0.01, &q)
		if s.Velocity.Y > 0 || s.WallJumpsUsed != 1 {
			t.Fatalf("wall jump limit ignored: velocity=%v used=%d", s.Velocity, s.WallJumpsUsed)
		}
	})

	t.Run("ground_proximity_guard", func(t *testing.T) {
		w := &boxWorld{}
		w.add(-50, -10, 50, 8.99)
		it := Integrator{Params: p}
		s := airborne()
		var q EventQueue
		_ = it.Integrate(&s, Signals{JumpPressed: true}, w, 0.01, &q)
		if s.WallJumpsUsed != 0 || s.Velocity.Y > 0 {
			t.Fatalf("wall jump should be blocked next to the floor: velocity=%v", s.Velocity)
		}
	})

	t.Run("no_ground_anomaly", func(t *testing.T) {
		w := &boxWorld{noGround: true}
		it := Integrator{Params: p}
		s := airborne()
		var q EventQueue
		err := it.Integrate(&s, Signals{JumpPressed: true}, w, 0.01, &q)
		if !errors.Is(err, ErrNoGroundBelow) {
			t.Fatalf("expected ErrNoGroundBelow, got %v", err)
		}
		if s.WallJumpsUsed != 1 {
			t.Fatalf("a missing floor should not block the wall jump")
		}
	})
}
