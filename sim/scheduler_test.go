package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
)

func flatWorld() *physics.World {
	w := physics.NewWorld()
	w.AddSolid(cp.BB{L: -50, B: -2, R: 50, T: 0})
	return w
}

func newActor(t *testing.T, name string, in motion.InputSampler, w motion.World, spawn cp.Vector) *Actor {
	t.Helper()
	a, err := NewActor(name, motion.DefaultParameters(), in, w, spawn)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestUpdateAccumulates(t *testing.T) {
	w := flatWorld()
	s := NewScheduler(0.1, newActor(t, "a", nil, w, cp.Vector{X: 0, Y: 1}))

	cases := []struct {
		frame     float64
		wantTicks int
		wantTotal uint64
	}{
		{0.05, 0, 0},
		{0.06, 1, 1},
		{0.25, 2, 3},
		{0, 0, 3},
		{-1, 0, 3},
	}
	for _, c := range cases {
		n, err := s.Update(c.frame)
		if err != nil {
			t.Fatal(err)
		}
		if n != c.wantTicks || s.Ticks() != c.wantTotal {
			t.Fatalf("Update(%v) = %d ticks (total %d), want %d (total %d)", c.frame, n, s.Ticks(), c.wantTicks, c.wantTotal)
		}
	}
	if a := s.Alpha(); math.Abs(a-0.6) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.6", a)
	}
}

func TestUpdateCapsBacklog(t *testing.T) {
	s := NewScheduler(0.1, newActor(t, "a", nil, flatWorld(), cp.Vector{Y: 1}))
	s.MaxTicks = 3
	n, err := s.Update(2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || s.Alpha() != 0 {
		t.Fatalf("ticks = %d alpha = %v, want 3 and an empty accumulator", n, s.Alpha())
	}
}

func TestHazardRespawns(t *testing.T) {
	w := flatWorld()
	w.AddTrigger(cp.BB{L: 3, B: 0, R: 4, T: 1})
	spawn := cp.Vector{X: 0, Y: 1}
	a := newActor(t, "runner", &motion.StaticInput{S: motion.Signals{Axis: 1}}, w, spawn)

	s := NewScheduler(DefaultStep, a)
	s.Hazards = w
	for i := 0; i < 120 && a.Deaths == 0; i++ {
		if err := s.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if a.Deaths != 1 {
		t.Fatalf("deaths = %d, want 1 (pos %v)", a.Deaths, a.Controller.Position())
	}
	if a.Controller.Position() != spawn || a.Controller.Velocity() != (cp.Vector{}) {
		t.Fatalf("after respawn pos=%v vel=%v", a.Controller.Position(), a.Controller.Velocity())
	}
}

func TestScriptInputIsPolled(t *testing.T) {
	script, err := input.NewScript([]byte(`axis = -1.0`), DefaultStep)
	if err != nil {
		t.Fatal(err)
	}
	a := newActor(t, "bot", script, flatWorld(), cp.Vector{Y: 1})
	s := NewScheduler(DefaultStep, a)
	for i := 0; i < 10; i++ {
		if err := s.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if script.Tick() != 10 {
		t.Fatalf("script ran %d times, want 10", script.Tick())
	}
	if a.Controller.Velocity().X >= 0 || a.Controller.Facing() != motion.Left {
		t.Fatalf("vel=%v facing=%v", a.Controller.Velocity(), a.Controller.Facing())
	}
	if a.Last.Input.Axis != -1 {
		t.Fatalf("last report input = %+v", a.Last.Input)
	}
}

type failingInput struct {
	motion.StaticInput
}

var errBroken = errors.New("broken pad")

func (*failingInput) Update() error { return errBroken }

func TestInputErrorsDoNotStopOthers(t *testing.T) {
	w := flatWorld()
	bad := newActor(t, "bad", &failingInput{}, w, cp.Vector{X: -10, Y: 1})
	good := newActor(t, "good", &motion.StaticInput{S: motion.Signals{Axis: 1}}, w, cp.Vector{X: 10, Y: 1})

	var reports []string
	s := NewScheduler(DefaultStep, bad, good)
	s.OnReport = func(a *Actor, _ motion.Report) { reports = append(reports, a.Name) }

	err := s.Tick()
	if !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want errBroken", err)
	}
	if len(reports) != 2 || reports[0] != "bad" || reports[1] != "good" {
		t.Fatalf("reports = %v", reports)
	}
	if good.Controller.Velocity().X <= 0 {
		t.Fatalf("good actor did not move")
	}
}

func TestActorRegistry(t *testing.T) {
	w := flatWorld()
	s := NewScheduler(0)
	if s.Step != DefaultStep {
		t.Fatalf("step = %v", s.Step)
	}
	s.Add(nil)
	s.Add(newActor(t, "a", nil, w, cp.Vector{Y: 1}))
	s.Add(newActor(t, "b", nil, w, cp.Vector{X: 5, Y: 1}))
	if len(s.Actors()) != 2 {
		t.Fatalf("actors = %d", len(s.Actors()))
	}
	if _, ok := s.Actor("b"); !ok {
		t.Fatalf("missing b")
	}
	if !s.Remove("a") || s.Remove("a") {
		t.Fatalf("remove should succeed once")
	}
	if _, ok := s.Actor("a"); ok {
		t.Fatalf("a still registered")
	}
}

func TestNewActorRejectsBadParameters(t *testing.T) {
	p := motion.DefaultParameters()
	p.WallDrag = 3
	if _, err := NewActor("x", p, nil, flatWorld(), cp.Vector{}); !errors.Is(err, motion.ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderPositionInterpolates(t *testing.T) {
	spawn := cp.Vector{X: 0, Y: 1}
	a := newActor(t, "walker", &motion.StaticInput{S: motion.Signals{Axis: 1}}, flatWorld(), spawn)
	s := NewScheduler(0.1, a)

	if got := a.RenderPosition(s.Alpha()); got != spawn {
		t.Fatalf("before any tick: %v, want spawn %v", got, spawn)
	}
	if _, err := s.Update(0.15); err != nil {
		t.Fatal(err)
	}
	now := a.Controller.Position()
	if now.X <= spawn.X {
		t.Fatalf("actor did not move: %v", now)
	}

	cases := []struct {
		name  string
		alpha float64
		want  cp.Vector
	}{
		{"half_step", s.Alpha(), spawn.Lerp(now, 0.5)},
		{"start", 0, a.Prev},
		{"clamped", 3, now},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := a.RenderPosition(c.alpha)
			if math.Abs(got.X-c.want.X) > 1e-9 || math.Abs(got.Y-c.want.Y) > 1e-9 {
				t.Fatalf("RenderPosition(%v) = %v, want %v", c.alpha, got, c.want)
			}
		})
	}

	a.Respawn()
	if got := a.RenderPosition(0.5); got != spawn {
		t.Fatalf("after respawn: %v, want %v", got, spawn)
	}
}
