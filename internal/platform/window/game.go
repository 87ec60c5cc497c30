// Package window renders the runner in a desktop window with ebiten.
package window

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/platform/audio"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

const flashDuration = 3 * time.Second

// Options configures a Game.
type Options struct {
	World    world.Definition
	Tuning   config.Tuning
	Content  content.Bundle
	Store    *storage.Store // nil disables run records
	Player   string
	TickRate int
	Audio    *audio.Player           // nil plays no sound
	Reloads  <-chan world.Definition // hot-reloaded world files
	Logger   *log.Logger
}

// Game implements ebiten.Game. Update drives one simulation frame per tick
// with wall-clock timestamps; the driver clamps long gaps.
type Game struct {
	sim     *sim.Simulation
	driver  *sim.Driver
	content content.Bundle
	store   *storage.Store
	audio   *audio.Player
	reloads <-chan world.Definition
	logger  *log.Logger
	player  string

	keys keyState
	now  func() time.Time

	snap       sim.Snapshot
	panel      *content.Panel
	completion *sim.Completion
	best       *storage.Run
	saved      bool
	flash      string
	flashUntil time.Time
}

// NewGame creates a game in the menu phase.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	g := &Game{
		content: opts.Content,
		store:   opts.Store,
		audio:   opts.Audio,
		reloads: opts.Reloads,
		logger:  logger,
		player:  player,
		keys:    ebitenKeys{},
		now:     time.Now,
	}
	g.sim = sim.New(opts.World, opts.Tuning)
	g.snap = g.sim.Snapshot()
	g.driver = sim.NewDriver(g.sim, opts.Tuning.Driver.MaxStep, sim.RendererFunc(func(s sim.Snapshot) {
		g.snap = s
	}))
	g.driver.OnEvents(g.handleEvents)
	return g
}

// Update reads the keyboard and advances one frame.
func (g *Game) Update() error {
	g.pollReloads()

	if g.keys.JustPressed(muteKey) && g.audio != nil {
		g.audio.SetMuted(!g.audio.Muted())
	}

	in := readInput(g.keys)
	if in.Has(core.ActionQuit) {
		g.driver.Close()
		return ebiten.Termination
	}
	g.step(g.now(), in)
	return nil
}

// step runs one frame with the given intents.
func (g *Game) step(now time.Time, in core.InputFrame) {
	if g.panel != nil && (in.Has(core.ActionConfirm) || in.Has(core.ActionPause)) {
		g.panel = nil
		in = heldOnly(in)
	}

	prev := g.sim.Phase()
	res := g.driver.Frame(now, in)

	if in.Has(core.ActionRestart) && res.Phase == sim.PhasePlaying && prev != sim.PhasePlaying {
		g.panel = nil
		g.completion = nil
		g.best = nil
		g.saved = false
	}

	if g.flash != "" && now.After(g.flashUntil) {
		g.flash = ""
	}
}

// heldOnly drops one-shot actions from a frame.
func heldOnly(in core.InputFrame) core.InputFrame {
	out := core.NewInputFrame()
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump} {
		if in.Has(a) {
			out.Set(a)
		}
	}
	return out
}

func (g *Game) handleEvents(events []sim.Event) {
	if g.audio != nil {
		g.audio.Handle(events)
	}
	for _, e := range events {
		switch ev := e.(type) {
		case sim.EventContent:
			p := g.content.Panel(ev.Label)
			g.panel = &p
		case sim.EventFinished:
			g.panel = nil
			c := g.sim.Completion()
			g.completion = &c
			g.recordRun(c)
		}
	}
}

// recordRun saves the finished run once.
func (g *Game) recordRun(c sim.Completion) {
	if g.saved {
		return
	}
	g.saved = true

	worldID := g.sim.Definition().ID
	g.logger.Info("run finished",
		"world", worldID,
		"player", g.player,
		"time", content.FormatTime(c.Elapsed),
		"respawns", c.Respawns,
	)
	if g.store == nil {
		return
	}

	_, err := g.store.SaveRun(storage.Run{
		WorldID:    worldID,
		Player:     g.player,
		Elapsed:    time.Duration(c.Elapsed * float64(time.Second)),
		Respawns:   c.Respawns,
		Stomps:     c.Stomps,
		Discovered: c.Discovered,
		Signs:      c.Signs,
	})
	if err != nil {
		g.logger.Error("could not save run", "error", err)
		return
	}
	best, err := g.store.Best(worldID)
	if err != nil {
		g.logger.Warn("could not load best run", "error", err)
		return
	}
	g.best = best
}

// pollReloads applies a changed definition of the current world.
func (g *Game) pollReloads() {
	if g.reloads == nil {
		return
	}
	select {
	case def, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			return
		}
		if def.ID != g.sim.Definition().ID {
			return
		}
		g.sim.SetDefinition(def)
		if g.sim.Phase() == sim.PhaseMenu {
			g.snap = g.sim.Snapshot()
			g.setFlash("World reloaded")
		} else {
			g.setFlash("World reloaded, restart to apply")
		}
	default:
	}
}

func (g *Game) setFlash(text string) {
	g.flash = text
	g.flashUntil = g.now().Add(flashDuration)
}

// Layout keeps the logical screen at the world's viewport size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.snap.Viewport.W), int(g.snap.Viewport.H)
}

// Simulation returns the driven simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := NewGame(opts)
	defer g.driver.Close()

	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}
	ebiten.SetWindowSize(int(g.snap.Viewport.W), int(g.snap.Viewport.H))
	ebiten.SetWindowTitle("Resume Run – " + opts.World.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.logger.Info("window opened", "world", opts.World.ID, "tps", ebiten.TPS())
	return ebiten.RunGame(g)
}
