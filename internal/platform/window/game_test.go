package window

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func (f fakeKeys) Pressed(k ebiten.Key) bool     { return f.held[k] }
func (f fakeKeys) JustPressed(k ebiten.Key) bool { return f.just[k] }

func TestReadInput(t *testing.T) {
	tests := []struct {
		name     string
		held     []ebiten.Key
		just     []ebiten.Key
		expected []core.Action
	}{
		{"nothing", nil, nil, nil},
		{"arrow left", []ebiten.Key{ebiten.KeyArrowLeft}, nil, []core.Action{core.ActionLeft}},
		{"d and space", []ebiten.Key{ebiten.KeyD, ebiten.KeySpace}, nil, []core.Action{core.ActionRight, core.ActionJump}},
		{"both directions cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyD, ebiten.KeyW}, nil, []core.Action{core.ActionJump}},
		{"interact", nil, []ebiten.Key{ebiten.KeyE}, []core.Action{core.ActionInteract}},
		{"escape pauses", nil, []ebiten.Key{ebiten.KeyEscape}, []core.Action{core.ActionPause}},
		{"enter confirms", nil, []ebiten.Key{ebiten.KeyEnter}, []core.Action{core.ActionConfirm}},
		{"q quits", nil, []ebiten.Key{ebiten.KeyQ}, []core.Action{core.ActionQuit}},
	}

	all := []core.Action{
		core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionInteract,
		core.ActionPause, core.ActionConfirm, core.ActionRestart, core.ActionQuit,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := fakeKeys{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
			for _, k := range tt.held {
				ks.held[k] = true
			}
			for _, k := range tt.just {
				ks.just[k] = true
			}

			f := readInput(ks)
			want := map[core.Action]bool{}
			for _, a := range tt.expected {
				want[a] = true
			}
			for _, a := range all {
				if f.Has(a) != want[a] {
					t.Errorf("readInput().Has(%v) = %v, expected %v", a, f.Has(a), want[a])
				}
			}
		})
	}
}

func signWorld() world.Definition {
	return world.Definition{
		ID:       "window-sign-test",
		Title:    "Sign Test",
		Geometry: world.DefaultGeometry(),
		Stages: []world.StageDef{
			{Name: "About", Start: 0, Length: 2000, Signs: []world.SignSpec{{X: 80, Label: "About"}}},
		},
	}
}

// finishWorld finishes on the first playing frame.
func finishWorld() world.Definition {
	g := world.DefaultGeometry()
	g.TrailingMargin = 0
	return world.Definition{
		ID:       "window-finish-test",
		Title:    "Finish Test",
		Geometry: g,
		Stages:   []world.StageDef{{Name: "Only", Start: 0, Length: 200}},
	}
}

type clock struct{ t time.Time }

func (c *clock) next() time.Time {
	c.t = c.t.Add(16 * time.Millisecond)
	return c.t
}

func newTestGame(def world.Definition, store *storage.Store) (*Game, *clock) {
	g := NewGame(Options{
		World:   def,
		Tuning:  config.DefaultTuning(),
		Content: content.Default(),
		Store:   store,
		Player:  "tester",
	})
	c := &clock{t: time.Unix(1000, 0)}
	g.now = func() time.Time { return c.t }
	return g, c
}

func TestGameStart(t *testing.T) {
	g, c := newTestGame(signWorld(), nil)
	if g.snap.Phase != sim.PhaseMenu {
		t.Fatalf("initial phase = %v, expected menu", g.snap.Phase)
	}

	g.step(c.next(), core.InputOf(core.ActionConfirm))
	if g.snap.Phase != sim.PhasePlaying {
		t.Errorf("phase after confirm = %v, expected playing", g.snap.Phase)
	}
}

func TestGamePanel(t *testing.T) {
	g, c := newTestGame(signWorld(), nil)
	g.step(c.next(), core.InputOf(core.ActionConfirm))
	g.step(c.next(), core.NewInputFrame())
	g.step(c.next(), core.InputOf(core.ActionInteract))

	if g.panel == nil {
		t.Fatal("panel not opened by interact")
	}
	if g.panel.Title != content.Default().Panel("About").Title {
		t.Errorf("panel title = %q", g.panel.Title)
	}

	// Escape closes the panel instead of pausing.
	g.step(c.next(), core.InputOf(core.ActionPause))
	if g.panel != nil {
		t.Error("panel still open after escape")
	}
	if g.snap.Phase != sim.PhasePlaying {
		t.Errorf("phase = %v, expected playing", g.snap.Phase)
	}
}

func TestGameFinishRecordsOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	g, c := newTestGame(finishWorld(), store)
	g.step(c.next(), core.InputOf(core.ActionConfirm))
	g.step(c.next(), core.NewInputFrame())
	g.step(c.next(), core.NewInputFrame())

	if g.snap.Phase != sim.PhaseFinished {
		t.Fatalf("phase = %v, expected finished", g.snap.Phase)
	}
	if g.completion == nil {
		t.Fatal("completion not set")
	}
	if g.best == nil || g.best.Player != "tester" {
		t.Errorf("best = %+v, expected a run by tester", g.best)
	}

	runs, err := store.BestRuns(finishWorld().ID, 10)
	if err != nil {
		t.Fatalf("BestRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("BestRuns() returned %d runs, expected 1", len(runs))
	}

	g.step(c.next(), core.InputOf(core.ActionRestart))
	if g.completion != nil || g.saved {
		t.Error("restart kept the previous completion")
	}
}

func TestGameReload(t *testing.T) {
	reloads := make(chan world.Definition, 1)
	g := NewGame(Options{
		World:   signWorld(),
		Tuning:  config.DefaultTuning(),
		Content: content.Default(),
		Reloads: reloads,
	})

	def := signWorld()
	def.Title = "Renamed"
	reloads <- def
	g.pollReloads()

	if g.sim.Definition().Title != "Renamed" {
		t.Errorf("Definition().Title = %q, expected %q", g.sim.Definition().Title, "Renamed")
	}
	if g.flash != "World reloaded" {
		t.Errorf("flash = %q, expected %q", g.flash, "World reloaded")
	}
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected []string
	}{
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"a\n\nb", 10, []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		if got := wrapLines(tt.text, tt.width); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("wrapLines(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.expected)
		}
	}
}

func TestPanelLines(t *testing.T) {
	p := content.Panel{Title: "Links", Links: []content.Link{{Label: "Site", URL: "https://example.com"}}}
	lines := panelLines(p)
	if lines[0] != "Links" {
		t.Errorf("panelLines()[0] = %q, expected %q", lines[0], "Links")
	}
	found := false
	for _, l := range lines {
		if l == "Site: https://example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("panelLines() = %q, missing link line", lines)
	}
}
