package sim

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

// DefaultStep is the fixed simulation tick.
const DefaultStep = 1.0 / 60

// DefaultMaxTicks bounds catch-up work after a long frame.
const DefaultMaxTicks = 5

// Hazards reports the trigger shapes a box overlaps.
type Hazards interface {
	Triggers(box motion.Box) []motion.ShapeID
}

// Actor is one simulated character.
type Actor struct {
	Name       string
	Controller *motion.Controller
	Input      motion.InputSampler
	Spawn      cp.Vector

	// Prev is the position before the latest tick, for render interpolation.
	Prev    cp.Vector
	Last    motion.Report
	Deaths  int
	Elapsed float64
}

// Scheduler advances every actor with a fixed step, accumulating frame
// time between calls.
type Scheduler struct {
	Step     float64
	MaxTicks int
	Hazards  Hazards
	OnReport func(a *Actor, r motion.Report)

	actors []*Actor
	acc    float64
	ticks  uint64
}

func NewScheduler(step float64, actors ...*Actor) *Scheduler {
	if step <= 0 {
		step = DefaultStep
	}
	s := &Scheduler{Step: step, MaxTicks: DefaultMaxTicks}
	for _, a := range actors {
		s.Add(a)
	}
	return s
}

func (s *Scheduler) Add(a *Actor) {
	if a == nil || a.Controller == nil {
		return
	}
	s.actors = append(s.actors, a)
}

// Remove drops the actor with the given name and reports whether it existed.
func (s *Scheduler) Remove(name string) bool {
	for i, a := range s.actors {
		if a.Name == name {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Actor(name string) (*Actor, bool) {
	for _, a := range s.actors {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func (s *Scheduler) Actors() []*Actor {
	actors := make([]*Actor, 0, len(s.actors))
	return append(actors, s.actors...)
}

// Ticks is the number of fixed steps run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Alpha is the fraction of a step left in the accumulator, for render
// interpolation.
func (s *Scheduler) Alpha() float64 {
	return s.acc / s.Step
}

// Update adds frameDt to the accumulator and runs as many whole steps as
// fit, at most MaxTicks. Leftover time beyond the cap is dropped.
func (s *Scheduler) Update(frameDt float64) (int, error) {
	if frameDt > 0 {
		s.acc += frameDt
	}
	var errs []error
	n := 0
	for s.acc >= s.Step {
		if s.MaxTicks > 0 && n >= s.MaxTicks {
			log.Printf("sim: dropping %.3fs of backlog", s.acc)
			s.acc = 0
			break
		}
		if err := s.Tick(); err != nil {
			errs = append(errs, err)
		}
		s.acc -= s.Step
		n++
	}
	return n, errors.Join(errs...)
}

// Tick runs one fixed step for every actor in insertion order. Actors share
// one world, so they are stepped sequentially.
func (s *Scheduler) Tick() error {
	var errs []error
	for _, a := range s.actors {
		if err := pollInput(a.Input); err != nil {
			errs = append(errs, fmt.Errorf("sim: actor %s: %w", a.Name, err))
		}
		a.Prev = a.Controller.Position()
		report := a.Controller.Advance(s.Step)
		a.Last = report
		a.Elapsed += s.Step
		if s.Hazards != nil && len(s.Hazards.Triggers(a.Controller.Box())) > 0 {
			a.Respawn()
			a.Deaths++
		}
		if s.OnReport != nil {
			s.OnReport(a, report)
		}
	}
	s.ticks++
	return errors.Join(errs...)
}

func pollInput(in motion.InputSampler) error {
	switch src := in.(type) {
	case interface{ Update() error }:
		return src.Update()
	case interface{ Update() }:
		src.Update()
	}
	return nil
}
