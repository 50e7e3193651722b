package levels

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sim"
)

// PlayerName is the actor name of the level's player.
const PlayerName = "player"

// Options selects how the player is driven. PlayerScript wins over
// PlayerInput; with neither the player stands still.
type Options struct {
	PlayerInput  motion.InputSampler
	PlayerScript string
}

// Level is a loaded tile map with its characters.
type Level struct {
	Name   string
	Spec   prefabs.LevelSpec
	World  *physics.World
	Tiles  physics.TileMap
	Sched  *sim.Scheduler
	Player *sim.Actor

	prefabOf map[string]string
	scriptOf map[string]string
}

// Load builds the world for a level prefab.
func Load(name string, opts Options) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return nil, err
	}

	world := physics.NewWorld()
	origin := cp.Vector{X: spec.Origin.X, Y: spec.Origin.Y}
	tiles, err := world.LoadTiles(spec.Tiles, spec.TileSize, origin)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}

	l := &Level{
		Name:     name,
		Spec:     spec,
		World:    world,
		Tiles:    tiles,
		Sched:    sim.NewScheduler(sim.DefaultStep),
		prefabOf: make(map[string]string),
		scriptOf: make(map[string]string),
	}
	l.Sched.Hazards = world

	spawn := tiles.Spawn
	if !tiles.HasSpawn {
		spawn = origin.Add(cp.Vector{X: tiles.Width / 2, Y: tiles.Height / 2})
		log.Printf("levels: %s: no spawn tile, using %v", name, spawn)
	}

	playerInput := opts.PlayerInput
	if playerInput == nil {
		playerInput = &motion.StaticInput{}
	}
	if opts.PlayerScript != "" {
		s, err := loadScript(opts.PlayerScript)
		if err != nil {
			return nil, err
		}
		playerInput = s
		l.scriptOf[PlayerName] = opts.PlayerScript
	}
	l.Player, err = l.spawn(PlayerName, spec.Player, playerInput, spawn)
	if err != nil {
		return nil, err
	}

	for i, a := range spec.Actors {
		script, err := loadScript(a.Script)
		if err != nil {
			return nil, err
		}
		actorName := fmt.Sprintf("%s#%d", strings.TrimSuffix(filepath.Base(a.Prefab), filepath.Ext(a.Prefab)), i)
		if _, err := l.spawn(actorName, a.Prefab, script, cp.Vector{X: a.Spawn.X, Y: a.Spawn.Y}); err != nil {
			return nil, err
		}
		l.scriptOf[actorName] = a.Script
	}
	return l, nil
}

func (l *Level) spawn(name, prefab string, in motion.InputSampler, at cp.Vector) (*sim.Actor, error) {
	params, err := loadParameters(prefab)
	if err != nil {
		return nil, err
	}
	actor, err := sim.NewActor(name, params, in, l.World, at)
	if err != nil {
		return nil, err
	}
	l.Sched.Add(actor)
	l.prefabOf[name] = prefab
	return actor, nil
}

// ReloadPrefab re-reads a character prefab and retunes every actor built
// from it. It returns how many actors changed.
func (l *Level) ReloadPrefab(prefab string) (int, error) {
	var params motion.Parameters
	loaded := false
	n := 0
	for _, a := range l.Sched.Actors() {
		if filepath.Base(l.prefabOf[a.Name]) != filepath.Base(prefab) {
			continue
		}
		if !loaded {
			p, err := loadParameters(prefab)
			if err != nil {
				return 0, err
			}
			params, loaded = p, true
		}
		if err := a.Controller.SetParameters(params); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ReloadScript recompiles a script and swaps it into every actor using it.
func (l *Level) ReloadScript(script string) (int, error) {
	n := 0
	for _, a := range l.Sched.Actors() {
		if filepath.Base(l.scriptOf[a.Name]) != filepath.Base(script) {
			continue
		}
		s, err := loadScript(script)
		if err != nil {
			return n, err
		}
		a.Input = s
		a.Controller.SetInput(s)
		n++
	}
	return n, nil
}

func loadParameters(prefab string) (motion.Parameters, error) {
	spec, err := prefabs.LoadCharacterSpec(prefab)
	if err != nil {
		return motion.Parameters{}, err
	}
	params, err := spec.Parameters()
	if err != nil {
		return motion.Parameters{}, fmt.Errorf("prefabs: %s: %w", prefab, err)
	}
	return params, nil
}

func loadScript(name string) (*input.Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	s, err := input.NewScript(src, sim.DefaultStep)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return s, nil
}
