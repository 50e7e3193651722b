package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/motion"
)

// NewActor builds a controller for in and wraps it for scheduling.
func NewActor(name string, params motion.Parameters, in motion.InputSampler, world motion.World, spawn cp.Vector) (*Actor, error) {
	c, err := motion.NewController(params, in, world, spawn)
	if err != nil {
		return nil, fmt.Errorf("sim: actor %s: %w", name, err)
	}
	return &Actor{Name: name, Controller: c, Input: in, Spawn: spawn, Prev: spawn}, nil
}

// Respawn puts the actor back at its spawn point.
func (a *Actor) Respawn() {
	a.Controller.Teleport(a.Spawn)
	a.Prev = a.Spawn
}

// RenderPosition blends the last two tick positions; alpha is usually
// Scheduler.Alpha.
func (a *Actor) RenderPosition(alpha float64) cp.Vector {
	return a.Prev.Lerp(a.Controller.Position(), common.Clamp(alpha, 0, 1))
}
