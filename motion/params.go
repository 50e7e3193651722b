package motion

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Parameters validation failure.
var ErrInvalidConfig = errors.New("motion: invalid configuration")

// DashMode selects how a dash moves the character.
type DashMode int

const (
	// DashEased drives horizontal velocity towards DashSpeed with the
	// grounded/air acceleration curve for DashDuration seconds.
	DashEased DashMode = iota
	// DashQueued enqueues fixed per-tick displacements consumed one per step.
	DashQueued
)

func (m DashMode) String() string {
	switch m {
	case DashEased:
		return "eased"
	case DashQueued:
		return "queued"
	}
	return fmt.Sprintf("DashMode(%d)", int(m))
}

// ParseDashMode maps a config string to a DashMode. Empty means eased.
func ParseDashMode(s string) (DashMode, error) {
	switch s {
	case "", "eased":
		return DashEased, nil
	case "queued":
		return DashQueued, nil
	}
	return DashEased, &ConfigError{Field: "dash_mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}

// Parameters holds the tuning for one character. Speeds are world units per
// second, accelerations units per second squared, durations seconds.
type Parameters struct {
	Width  float64
	Height float64

	MaxWalkSpeed       float64
	MaxSprintSpeed     float64
	GroundAcceleration float64
	GroundDeceleration float64
	AirAcceleration    float64

	// Gravity is signed; with y-up it is negative.
	Gravity          float64
	RiseGravityScale float64
	FallGravityScale float64
	JumpHeight       float64
	CoyoteTime       float64
	JumpBufferTime   float64

	DashMode              DashMode
	DashSpeed             float64
	DashDuration          float64
	DashDistanceIncrement float64
	DashJumpingAllowed    bool
	MoveWhileDashing      bool

	WallDrag      float64
	WallJumpBoost float64
	MaxWallJumps  int
}

// DefaultParameters returns a playable baseline tuning.
func DefaultParameters() Parameters {
	return Parameters{
		Width:                 1,
		Height:                2,
		MaxWalkSpeed:          10,
		MaxSprintSpeed:        16,
		GroundAcceleration:    50,
		GroundDeceleration:    80,
		AirAcceleration:       30,
		Gravity:               -9.81,
		RiseGravityScale:      1,
		FallGravityScale:      1,
		JumpHeight:            5,
		DashSpeed:             30,
		DashDuration:          0.25,
		DashDistanceIncrement: 0.05,
		WallDrag:              0.2,
		WallJumpBoost:         1.2,
		MaxWallJumps:          2,
	}
}

// ConfigError names the tuning field that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("motion: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate reports the first tuning value that breaks the parameter
// contract. Values are never clamped.
func (p Parameters) Validate() error {
	nonNegative := []struct {
		field string
		v     float64
	}{
		{"max_walk_speed", p.MaxWalkSpeed},
		{"max_sprint_speed", p.MaxSprintSpeed},
		{"ground_acceleration", p.GroundAcceleration},
		{"ground_deceleration", p.GroundDeceleration},
		{"air_acceleration", p.AirAcceleration},
		{"rise_gravity_scale", p.RiseGravityScale},
		{"fall_gravity_scale", p.FallGravityScale},
		{"jump_height", p.JumpHeight},
		{"coyote_time", p.CoyoteTime},
		{"jump_buffer_time", p.JumpBufferTime},
		{"dash_speed", p.DashSpeed},
		{"dash_duration", p.DashDuration},
		{"dash_distance_increment", p.DashDistanceIncrement},
		{"wall_jump_boost", p.WallJumpBoost},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigError{Field: f.field, Reason: "must be finite"}
		}
		if f.v < 0 {
			return &ConfigError{Field: f.field, Reason: fmt.Sprintf("must be >= 0, got %v", f.v)}
		}
	}
	if !(p.Width > 0) || !(p.Height > 0) {
		return &ConfigError{Field: "collider", Reason: fmt.Sprintf("size must be positive, got %vx%v", p.Width, p.Height)}
	}
	if p.Gravity == 0 || math.IsNaN(p.Gravity) || math.IsInf(p.Gravity, 0) {
		return &ConfigError{Field: "gravity", Reason: "must be finite and non-zero"}
	}
	if math.IsNaN(p.WallDrag) || p.WallDrag < 0 || p.WallDrag > 1 {
		return &ConfigError{Field: "wall_drag", Reason: fmt.Sprintf("must be in [0,1], got %v", p.WallDrag)}
	}
	if p.MaxWallJumps < 0 {
		return &ConfigError{Field: "max_wall_jumps", Reason: fmt.Sprintf("must be >= 0, got %d", p.MaxWallJumps)}
	}
	switch p.DashMode {
	case DashEased:
	case DashQueued:
		if p.DashDistanceIncrement <= 0 {
			return &ConfigError{Field: "dash_distance_increment", Reason: "queued dash needs a positive increment"}
		}
	default:
		return &ConfigError{Field: "dash_mode", Reason: p.DashMode.String()}
	}
	return nil
}

// JumpVelocity is the launch speed that reaches JumpHeight under Gravity.
func (p Parameters) JumpVelocity() float64 {
	return math.Sqrt(2 * p.JumpHeight * math.Abs(p.Gravity))
}
