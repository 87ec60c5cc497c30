package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/world"
)

func TestProjectionRect(t *testing.T) {
	snap := sim.Snapshot{Camera: 100, Viewport: sim.Viewport{W: 960, H: 540}}
	p := newProjection(snap, 96, 54, 1)

	tests := []struct {
		name     string
		box      core.Box
		expected core.Rect
	}{
		{"aligned", core.NewBox(200, 100, 50, 20), core.NewRect(10, 11, 5, 2)},
		{"sub-cell box covers one cell", core.NewBox(205, 100, 2, 2), core.NewRect(10, 11, 1, 1)},
		{"clipped left", core.NewBox(50, 0, 100, 10), core.NewRect(0, 1, 5, 1)},
		{"off screen right", core.NewBox(2000, 0, 10, 10), core.Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.rect(tc.box); got != tc.expected {
				t.Errorf("rect() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestDrawWorldShowsPlayerAndGround(t *testing.T) {
	s := sim.New(world.Default(), config.DefaultTuning())
	snap := s.Snapshot()

	screen := core.NewScreen(96, 24)
	drawWorld(screen, snap, 1, 22)

	out := screen.String()
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, GroundChar) {
		t.Error("ground not drawn")
	}
	if strings.ContainsRune(screenRow(screen, 0), GroundChar) {
		t.Error("world drawn into the HUD row")
	}
}

func TestDrawHUD(t *testing.T) {
	snap := sim.Snapshot{
		Elapsed: 75.5,
		Stage:   sim.StageInfo{Index: 1, Count: 4, Name: "Skills"},
	}

	screen := core.NewScreen(80, 10)
	drawHUD(screen, snap)

	if !strings.Contains(screenRow(screen, 0), "Stage: 2/4 – Skills") {
		t.Errorf("HUD row = %q", screenRow(screen, 0))
	}
	if !strings.Contains(screenRow(screen, 0), "Time: 1:15") {
		t.Errorf("HUD row = %q", screenRow(screen, 0))
	}
	if !strings.Contains(screenRow(screen, 9), content.HintControls) {
		t.Errorf("hint row = %q", screenRow(screen, 9))
	}

	snap.CanInteract = true
	drawHUD(screen, snap)
	if !strings.Contains(screenRow(screen, 9), content.HintInteract) {
		t.Errorf("hint row near sign = %q", screenRow(screen, 9))
	}
}

func TestDrawOverlayCentersAndTruncates(t *testing.T) {
	screen := core.NewScreen(20, 7)
	drawOverlay(screen, []overlayLine{line("HI"), line("a very long line that will not fit")})

	if !strings.Contains(screenRow(screen, 2), "HI") {
		t.Errorf("row 2 = %q", screenRow(screen, 2))
	}
	if !strings.Contains(screenRow(screen, 3), "…") {
		t.Errorf("long line not truncated: %q", screenRow(screen, 3))
	}
	if screen.Get(0, 1) != '┌' {
		t.Errorf("box corner = %q, expected ┌", screen.Get(0, 1))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s        string
		n        int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}

	for _, tc := range tests {
		if got := truncate(tc.s, tc.n); got != tc.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tc.s, tc.n, got, tc.expected)
		}
	}
}

func TestPanelLines(t *testing.T) {
	b := content.Default()

	skills := panelLines(b.Panel("Skills"), 40)
	joined := ""
	for _, l := range skills {
		joined += l.text + "\n"
	}
	if !strings.Contains(joined, "[React]") {
		t.Errorf("skills panel missing pills:\n%s", joined)
	}
	for _, l := range skills {
		if len([]rune(l.text)) > 40 {
			t.Errorf("line wider than wrap width: %q", l.text)
		}
	}

	unknown := panelLines(b.Panel("Mystery"), 40)
	if unknown[0].text != "Mystery" {
		t.Errorf("unknown panel title = %q", unknown[0].text)
	}
}

func screenRow(s *core.Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}
