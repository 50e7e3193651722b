package motion

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
)

// Report describes what one Advance call did.
type Report struct {
	Input    Signals
	Contacts []Resolved
	Events   []Event
	// Anomaly is set when the world looked inconsistent, for example a
	// ground probe that hit nothing. The step still completed.
	Anomaly error
}

// Controller owns the motion state of one character and advances it once
// per simulation tick: sample input, integrate, translate, query, resolve.
type Controller struct {
	params     Parameters
	integrator Integrator
	resolver   Resolver

	input    InputSampler
	world    World
	feedback FeedbackFunc

	state  State
	events EventQueue
}

// NewController validates params and spawns a character at spawn.
func NewController(params Parameters, input InputSampler, world World, spawn cp.Vector) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("motion: new controller: %w", err)
	}
	return &Controller{
		params:     params,
		integrator: Integrator{Params: params},
		resolver:   Resolver{Params: params},
		input:      input,
		world:      world,
		state:      NewState(spawn),
	}, nil
}

// SetParameters swaps the tuning after validating it. The current state is
// kept, except that a dash in flight ends when the dash mode changes; its
// DashEnded event is reported by the next Advance.
func (c *Controller) SetParameters(params Parameters) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("motion: set parameters: %w", err)
	}
	if params.DashMode != c.params.DashMode && c.state.IsDashing {
		c.state.cancelDash()
		c.events.Push(Event{Kind: EventDashEnded})
	}
	c.params = params
	c.integrator.Params = params
	c.resolver.Params = params
	return nil
}

func (c *Controller) SetInput(input InputSampler) {
	c.input = input
}

// SetFeedback registers fn to receive events after each step.
func (c *Controller) SetFeedback(fn FeedbackFunc) {
	c.feedback = fn
}

// Advance runs one step of dt seconds. Non-positive dt is a no-op.
func (c *Controller) Advance(dt float64) Report {
	if dt <= 0 {
		return Report{}
	}

	in := Sample(c.input)
	wasGrounded := c.state.IsGrounded
	wasDashing := c.state.IsDashing

	anomaly := c.integrator.Integrate(&c.state, in, c.world, dt, &c.events)

	delta := c.state.Velocity.Mult(dt)
	if step, ok := c.state.popDashStep(); ok {
		delta = delta.Add(step)
		if !c.state.IsDashing {
			c.events.Push(Event{Kind: EventDashEnded})
		}
	}
	c.state.Position = c.state.Position.Add(delta)

	contacts := c.resolver.Resolve(&c.state, c.world, &c.events)
	if !wasGrounded && c.state.IsGrounded {
		c.events.Push(Event{Kind: EventLanded})
	}
	if wasDashing && !c.state.IsDashing {
		c.state.DashElapsed = 0
	}

	if anomaly != nil {
		log.Printf("motion: %v", anomaly)
	}

	report := Report{
		Input:    in,
		Contacts: contacts,
		Events:   c.events.Drain(),
		Anomaly:  anomaly,
	}
	if c.feedback != nil {
		for _, evt := range report.Events {
			c.feedback(evt)
		}
	}
	return report
}

func (c *Controller) Position() cp.Vector { return c.state.Position }
func (c *Controller) Velocity() cp.Vector { return c.state.Velocity }
func (c *Controller) IsGrounded() bool    { return c.state.IsGrounded }
func (c *Controller) IsDashing() bool     { return c.state.IsDashing }
func (c *Controller) Facing() Facing      { return c.state.Facing }
func (c *Controller) WallJumpsUsed() int  { return c.state.WallJumpsUsed }

// Box returns the current collision box.
func (c *Controller) Box() Box {
	return c.resolver.Box(&c.state)
}

func (c *Controller) Parameters() Parameters {
	return c.params
}

// State returns a copy of the motion state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Teleport moves the character and clears its velocity and dash, as on respawn.
func (c *Controller) Teleport(position cp.Vector) {
	c.state = NewState(position)
}
