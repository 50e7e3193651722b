package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sim"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	levelName  string
	scriptName string
	level      *levels.Level

	camera   Camera
	feedback *Feedback
	watcher  *prefabs.Watcher
	ui       *ebitenui.UI
}

func NewGame(levelName, scriptName string, debug, watch bool) (*Game, error) {
	g := &Game{
		debug:      debug,
		levelName:  levelName,
		scriptName: scriptName,
		camera:     NewCamera(),
		feedback:   NewFeedback(),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.camera.Center = g.level.Player.Controller.Position()

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) loadLevel() error {
	l, err := levels.Load(g.levelName, levels.Options{
		PlayerInput:  input.NewDevice(),
		PlayerScript: g.scriptName,
	})
	if err != nil {
		return err
	}
	l.Player.Controller.SetFeedback(g.feedback.Handle)
	l.Sched.OnReport = g.onReport
	g.level = l
	return nil
}

func (g *Game) reloadLevel() {
	if err := g.loadLevel(); err != nil {
		log.Printf("levels: %s: reload failed, keeping the old one: %v", g.levelName, err)
		return
	}
	log.Printf("levels: %s: reloaded", g.levelName)
}

func (g *Game) onReport(a *sim.Actor, r motion.Report) {
	if !g.debug || a != g.level.Player {
		return
	}
	if r.Anomaly != nil {
		g.feedback.Note("anomaly: " + r.Anomaly.Error())
	}
}

func (g *Game) dashMode() motion.DashMode {
	return g.level.Player.Controller.Parameters().DashMode
}

// toggleDashMode flips the player between eased and queued dashes.
func (g *Game) toggleDashMode() motion.DashMode {
	c := g.level.Player.Controller
	p := c.Parameters()
	if p.DashMode == motion.DashEased {
		p.DashMode = motion.DashQueued
		if p.DashDistanceIncrement <= 0 {
			p.DashDistanceIncrement = motion.DefaultParameters().DashDistanceIncrement
		}
	} else {
		p.DashMode = motion.DashEased
	}
	if err := c.SetParameters(p); err != nil {
		log.Printf("motion: toggle dash mode: %v", err)
	}
	return c.Parameters().DashMode
}

func dashLabel(m motion.DashMode) string {
	return "Dash: " + m.String()
}

// applyChanges picks up edited prefabs and scripts.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}
	for _, change := range g.watcher.Poll() {
		switch {
		case change.Kind == prefabs.ChangeScript:
			n, err := g.level.ReloadScript(change.Name)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", change.Name, err)
				continue
			}
			log.Printf("prefabs: reloaded script %s for %d actors", change.Name, n)
		case change.Name == g.levelName:
			g.reloadLevel()
		default:
			n, err := g.level.ReloadPrefab(change.Name)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", change.Name, err)
				continue
			}
			log.Printf("prefabs: reloaded %s for %d actors", change.Name, n)
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.level.Player.Respawn()
	}

	g.applyChanges()

	if _, err := g.level.Sched.Update(1 / float64(ebiten.TPS())); err != nil {
		log.Printf("sim: %v", err)
	}
	g.camera.Follow(g.level.Player.RenderPosition(g.level.Sched.Alpha()), 0.15)
	return nil
}

func shapeColor(k physics.Kind) color.Color {
	switch k {
	case physics.KindOneWay:
		return colornames.Peru
	case physics.KindTrigger:
		return colornames.Crimson
	}
	return colornames.Slategray
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, s := range g.level.World.Shapes() {
		x, y, w, h := g.camera.Rect(s.BB)
		vector.FillRect(screen, x, y, w, h, shapeColor(s.Kind), false)
	}

	for _, a := range g.level.Sched.Actors() {
		g.drawActor(screen, a)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	if g.debug {
		g.drawDebug(screen)
	}
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawActor(screen *ebiten.Image, a *sim.Actor) {
	c := a.Controller
	box := c.Box()
	box.Center = a.RenderPosition(g.level.Sched.Alpha())
	bb := cp.BB{
		L: box.Center.X - box.HalfExtents.X,
		B: box.Center.Y - box.HalfExtents.Y,
		R: box.Center.X + box.HalfExtents.X,
		T: box.Center.Y + box.HalfExtents.Y,
	}
	x, y, w, h := g.camera.Rect(bb)

	var fill color.Color = colornames.Orange
	if a == g.level.Player {
		fill = colornames.Dodgerblue
	}
	if c.IsDashing() {
		fill = colornames.Gold
	}
	vector.FillRect(screen, x, y, w, h, fill, false)

	// facing marker
	eyeX := x + w/2 + float32(c.Facing().Sign())*w/4
	vector.FillRect(screen, eyeX-2, y+h/4, 4, 4, colornames.White, false)

	if !g.debug {
		return
	}
	vector.StrokeRect(screen, x, y, w, h, 1, colornames.White, false)
	cx, cy := g.camera.ToScreen(box.Center)
	for _, r := range a.Last.Contacts {
		tx, ty := g.camera.ToScreen(box.Center.Add(r.Contact.Normal))
		vector.StrokeLine(screen, cx, cy, tx, ty, 2, contactColor(r.Class), true)
	}
}

func contactColor(c motion.ContactClass) color.Color {
	switch c {
	case motion.ContactGround:
		return colornames.Lime
	case motion.ContactCeiling:
		return colornames.Magenta
	}
	return colornames.Yellow
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	p := g.level.Player
	c := p.Controller
	lines := []string{
		fmt.Sprintf("level: %s  tick: %d  deaths: %d", g.level.Name, g.level.Sched.Ticks(), p.Deaths),
		fmt.Sprintf("pos: (%.2f, %.2f)  vel: (%.2f, %.2f)", c.Position().X, c.Position().Y, c.Velocity().X, c.Velocity().Y),
		fmt.Sprintf("grounded: %v  dashing: %v  facing: %v  wall jumps: %d  dash: %v",
			c.IsGrounded(), c.IsDashing(), c.Facing(), c.WallJumpsUsed(), c.Parameters().DashMode),
		fmt.Sprintf("input: %+v", p.Last.Input),
		"events: " + strings.Join(g.feedback.Recent(), " "),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 0, 20+i*16)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
