package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script drives a character from a tengo script. Each tick the script runs
// with `tick` and `dt` bound and sets any of the globals `axis` (float),
// `jump`, `sprint` and `dash` (bool). Unset outputs read as zero.
type Script struct {
	compiled *tengo.Compiled
	tick     int
	dt       float64

	axis   float64
	sprint bool
	jump   Edge
	dash   Edge
}

// NewScript compiles src for a fixed tick length dt.
func NewScript(src []byte, dt float64) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("dt", dt)
	_ = script.Add("axis", 0.0)
	_ = script.Add("jump", false)
	_ = script.Add("sprint", false)
	_ = script.Add("dash", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script: %w", err)
	}
	return &Script{compiled: compiled, dt: dt}, nil
}

// Update runs the script for the next tick and latches its outputs.
func (s *Script) Update() error {
	inputs := map[string]any{
		"tick":   s.tick,
		"dt":     s.dt,
		"axis":   0.0,
		"jump":   false,
		"sprint": false,
		"dash":   false,
	}
	for name, v := range inputs {
		if err := s.compiled.Set(name, v); err != nil {
			return fmt.Errorf("input: script set %s: %w", name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: script tick %d: %w", s.tick, err)
	}
	s.tick++

	s.axis = clampAxis(s.compiled.Get("axis").Float())
	s.sprint = s.compiled.Get("sprint").Bool()
	s.jump.Update(s.compiled.Get("jump").Bool())
	s.dash.Update(s.compiled.Get("dash").Bool())
	return nil
}

// Tick is the number of completed Update calls.
func (s *Script) Tick() int {
	return s.tick
}

func (s *Script) HorizontalAxis() float64 { return s.axis }
func (s *Script) JumpPressed() bool       { return s.jump.Pressed() }
func (s *Script) JumpReleased() bool      { return s.jump.Released() }
func (s *Script) SprintHeld() bool        { return s.sprint }
func (s *Script) DashTriggered() bool     { return s.dash.Pressed() }

func (s *Script) JumpHeld() float64 {
	if s.jump.Held() {
		return 1
	}
	return 0
}
