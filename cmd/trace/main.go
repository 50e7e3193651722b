package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/sim"
	"gopkg.in/yaml.v3"
)

type actorSummary struct {
	Name      string         `yaml:"name"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Grounded  bool           `yaml:"grounded"`
	Deaths    int            `yaml:"deaths"`
	WallJumps int            `yaml:"wall_jumps_used"`
	Events    map[string]int `yaml:"events,omitempty"`
	Anomalies int            `yaml:"anomalies,omitempty"`
}

type summary struct {
	Level   string          `yaml:"level"`
	Ticks   uint64          `yaml:"ticks"`
	Seconds float64         `yaml:"seconds"`
	Actors  []*actorSummary `yaml:"actors"`
}

func main() {
	levelName := flag.String("level", "level.yaml", "level prefab in prefabs/")
	script := flag.String("script", "patrol.tengo", "script driving the player")
	ticks := flag.Int("ticks", 600, "fixed steps to simulate")
	every := flag.Int("every", 60, "print actor state every n ticks (0 disables)")
	flag.Parse()

	l, err := levels.Load(*levelName, levels.Options{PlayerScript: *script})
	if err != nil {
		log.Fatal(err)
	}

	stats := make(map[*sim.Actor]*actorSummary)
	l.Sched.OnReport = func(a *sim.Actor, r motion.Report) {
		s, ok := stats[a]
		if !ok {
			s = &actorSummary{Name: a.Name, Events: make(map[string]int)}
			stats[a] = s
		}
		for _, evt := range r.Events {
			s.Events[string(evt.Kind)]++
		}
		if r.Anomaly != nil {
			s.Anomalies++
		}
	}

	for i := 1; i <= *ticks; i++ {
		if err := l.Sched.Tick(); err != nil {
			log.Printf("sim: tick %d: %v", i, err)
		}
		if *every > 0 && i%*every == 0 {
			for _, a := range l.Sched.Actors() {
				c := a.Controller
				fmt.Printf("%6d %-10s pos=(%7.3f, %7.3f) vel=(%7.3f, %7.3f) grounded=%v dashing=%v\n",
					i, a.Name, c.Position().X, c.Position().Y, c.Velocity().X, c.Velocity().Y, c.IsGrounded(), c.IsDashing())
			}
		}
	}

	out := summary{Level: l.Name, Ticks: l.Sched.Ticks(), Seconds: float64(l.Sched.Ticks()) * l.Sched.Step}
	for _, a := range l.Sched.Actors() {
		s, ok := stats[a]
		if !ok {
			s = &actorSummary{Name: a.Name}
		}
		c := a.Controller
		s.X, s.Y = c.Position().X, c.Position().Y
		s.Grounded = c.IsGrounded()
		s.Deaths = a.Deaths
		s.WallJumps = c.WallJumpsUsed()
		out.Actors = append(out.Actors, s)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
	_ = enc.Close()
}
