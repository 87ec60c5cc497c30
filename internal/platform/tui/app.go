package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/registry"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

// Minimum terminal size for the game view.
const (
	minWidth  = 40
	minHeight = 12
)

// Options configures an App.
type Options struct {
	World     world.Definition
	Tuning    config.Tuning
	Content   content.Bundle
	Store     *storage.Store // nil disables run records
	Runtime   core.RuntimeConfig
	Player    string
	Clipboard Clipboard               // nil shows the share text instead
	Reloads   <-chan world.Definition // hot-reloaded world files
	Logger    *log.Logger
}

// reloadMsg carries a world definition that changed on disk.
type reloadMsg struct {
	def world.Definition
}

func waitForReload(ch <-chan world.Definition) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		def, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{def: def}
	}
}

// frameView keeps the snapshot of the latest frame.
type frameView struct {
	snap   sim.Snapshot
	frames uint64
}

func (v *frameView) Render(s sim.Snapshot) {
	v.snap = s
	v.frames++
}

// App is the Bubble Tea model for a run: menu, game view, panels, overlays
// and the records board.
type App struct {
	sim       *sim.Simulation
	driver    *sim.Driver
	latch     *core.Latch
	view      *frameView
	screen    *core.Screen
	store     *storage.Store
	content   content.Bundle
	config    core.RuntimeConfig
	noticeTTL time.Duration
	keyMapper *KeyMapper
	keys      GameKeyMap
	help      help.Model
	clip      Clipboard
	reloads   <-chan world.Definition
	logger    *log.Logger
	player    string

	worlds   []registry.WorldInfo
	worldIdx int

	panel      *content.Panel
	showHelp   bool
	showShare  bool
	flash      string
	flashUntil time.Time
	saved      bool
	best       *storage.Run
	records    *RecordsModel
	quitting   bool
}

// NewApp creates the model. The simulation starts in the menu.
func NewApp(opts Options) App {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	hold := opts.Tuning.Driver.HoldWindow
	if hold <= 0 {
		hold = cfg.HoldWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	s := sim.New(opts.World, opts.Tuning)
	view := &frameView{snap: s.Snapshot()}
	driver := sim.NewDriver(s, opts.Tuning.Driver.MaxStep, view)
	latch := core.NewLatch(hold)
	driver.Attach(latch)

	h := help.New()
	h.Width = cfg.ScreenW

	m := App{
		sim:       s,
		driver:    driver,
		latch:     latch,
		view:      view,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     opts.Store,
		content:   opts.Content,
		config:    cfg,
		noticeTTL: time.Duration(opts.Tuning.Rules.NoticeTTL * float64(time.Second)),
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      h,
		clip:      opts.Clipboard,
		reloads:   opts.Reloads,
		logger:    logger,
		player:    player,
		worlds:    registry.List(),
	}
	for i, w := range m.worlds {
		if w.ID == opts.World.ID {
			m.worldIdx = i
		}
	}
	return m
}

// Init starts the frame loop.
func (m App) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.FrameInterval()), waitForReload(m.reloads))
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.records != nil {
			return m.updateRecords(msg)
		}
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		if m.records != nil {
			return m.updateRecords(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case reloadMsg:
		m.applyReload(msg.def, time.Now())
		return m, waitForReload(m.reloads)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m App) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.driver.Close()
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}

	if m.panel != nil && key.Matches(msg, m.keys.Close) {
		m.panel = nil
		return m, nil
	}

	phase := m.sim.Phase()
	if phase == sim.PhaseMenu || phase == sim.PhaseFinished {
		if key.Matches(msg, m.keys.Records) {
			m.openRecords()
			return m, nil
		}
	}

	switch phase {
	case sim.PhaseMenu:
		switch msg.String() {
		case "up", "k":
			m.selectWorld(-1)
			return m, nil
		case "down", "j":
			m.selectWorld(1)
			return m, nil
		}
	case sim.PhaseFinished:
		if key.Matches(msg, m.keys.Share) {
			m.share(now)
			return m, nil
		}
	}

	if action != core.ActionNone {
		m.latch.Press(action, now)
	}
	return m, nil
}

// handleTick runs one frame.
func (m App) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.driver.Closed() {
		return m, nil
	}

	prev := m.sim.Phase()
	in := m.latch.Frame(now)
	res := m.driver.Frame(now, in)

	for _, ev := range res.Events {
		switch e := ev.(type) {
		case sim.EventContent:
			p := m.content.Panel(e.Label)
			m.panel = &p
		case sim.EventFinished:
			m.panel = nil
			m.recordRun()
		}
	}

	// A restart begins a new run
	if in.Has(core.ActionRestart) && res.Phase == sim.PhasePlaying && prev != sim.PhasePlaying {
		m.panel = nil
		m.saved = false
		m.showShare = false
		m.best = nil
	}

	if m.flash != "" && now.After(m.flashUntil) {
		m.flash = ""
	}

	return m, tickCmd(m.config.FrameInterval())
}

// recordRun saves the finished run once.
func (m *App) recordRun() {
	if m.saved {
		return
	}
	m.saved = true

	c := m.sim.Completion()
	worldID := m.sim.Definition().ID
	m.logger.Info("run finished",
		"world", worldID,
		"player", m.player,
		"time", content.FormatTime(c.Elapsed),
		"respawns", c.Respawns,
	)

	if m.store == nil {
		return
	}

	_, err := m.store.SaveRun(storage.Run{
		WorldID:    worldID,
		Player:     m.player,
		Elapsed:    time.Duration(c.Elapsed * float64(time.Second)),
		Respawns:   c.Respawns,
		Stomps:     c.Stomps,
		Discovered: c.Discovered,
		Signs:      c.Signs,
	})
	if err != nil {
		m.logger.Error("could not save run", "world", worldID, "error", err)
		return
	}

	best, err := m.store.Best(worldID)
	if err != nil {
		m.logger.Warn("could not load best run", "world", worldID, "error", err)
		return
	}
	m.best = best
}

// share copies the summary to the clipboard, falling back to showing it.
func (m *App) share(now time.Time) {
	text := m.content.ShareText(m.sim.Elapsed())
	if m.clip != nil {
		err := m.clip.Copy(text)
		if err == nil {
			m.setFlash("Copied to clipboard", now)
			return
		}
		m.logger.Debug("clipboard unavailable", "error", err)
	}
	m.showShare = true
	m.setFlash("Copy the text above manually", now)
}

func (m *App) setFlash(text string, now time.Time) {
	m.flash = text
	m.flashUntil = now.Add(m.noticeTTL)
}

// selectWorld cycles the registered worlds from the menu.
func (m *App) selectWorld(delta int) {
	n := len(m.worlds)
	if n < 2 {
		return
	}
	m.worldIdx = (m.worldIdx + delta + n) % n

	def, err := registry.Get(m.worlds[m.worldIdx].ID)
	if err != nil {
		m.logger.Warn("could not select world", "error", err)
		return
	}
	m.sim.SetDefinition(def)
	m.view.snap = m.sim.Snapshot()
}

// applyReload swaps in a world that changed on disk.
func (m *App) applyReload(def world.Definition, now time.Time) {
	m.worlds = registry.List()
	if def.ID != m.sim.Definition().ID {
		return
	}

	m.sim.SetDefinition(def)
	if m.sim.Phase() == sim.PhaseMenu {
		m.view.snap = m.sim.Snapshot()
		m.setFlash("World reloaded", now)
		return
	}
	m.setFlash("World reloaded, restart to apply", now)
}

func (m *App) openRecords() {
	rm := NewRecordsModel(m.store, m.sim.Definition().ID, m.config.ScreenW, m.config.ScreenH)
	rm.embedded = true
	m.records = &rm
}

// updateRecords forwards input to the records board.
func (m App) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.records.Update(msg)
	rm, ok := updated.(RecordsModel)
	if !ok {
		return m, cmd
	}

	if rm.IsQuitting() {
		m.quitting = true
		m.driver.Close()
		return m, tea.Quit
	}
	if rm.IsGoingBack() {
		m.records = nil
		return m, nil
	}

	m.records = &rm
	return m, cmd
}

// View renders the current state to a string for display.
func (m App) View() string {
	if m.quitting {
		return ""
	}
	if m.records != nil {
		return m.records.View()
	}
	if m.screen.Width() < minWidth || m.screen.Height() < minHeight {
		return "Terminal too small. Resize to at least 40x13."
	}

	snap := m.view.snap
	m.screen.Clear()
	drawWorld(m.screen, snap, hudRows, m.screen.Height()-hudRows-hintRows)
	drawHUD(m.screen, snap)

	toast := snap.Notice
	if m.flash != "" {
		toast = m.flash
	}
	drawToast(m.screen, toast)

	width := max(min(60, m.screen.Width()-8), 10)
	switch {
	case m.showHelp:
		drawOverlay(m.screen, helpLines())
	case snap.Phase == sim.PhaseMenu:
		drawOverlay(m.screen, menuLines(m.sim.Definition().Title, snap.Stage.Count, len(m.worlds), width))
	case snap.Phase == sim.PhaseFinished:
		drawOverlay(m.screen, finishLines(m.sim.Completion(), m.content, m.best, m.showShare, width))
	case snap.Phase == sim.PhasePaused:
		drawOverlay(m.screen, pauseLines(m.content.Links))
	case m.panel != nil:
		drawOverlay(m.screen, panelLines(*m.panel, width))
	}

	var bar help.KeyMap = playHelp(m.keys)
	if snap.Phase == sim.PhaseMenu || snap.Phase == sim.PhaseFinished {
		bar = menuHelp(m.keys)
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(bar)
}

// Simulation returns the driven simulation.
func (m App) Simulation() *sim.Simulation {
	return m.sim
}

// Close tears down the driver and its input latch.
func (m App) Close() {
	m.driver.Close()
}

// Run starts the Bubble Tea program for a local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if app, ok := final.(App); ok {
		app.Close()
	}
	return err
}
