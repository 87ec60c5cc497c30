package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs for world elements.
const (
	GroundChar = '▓'
	LedgeChar  = '▀'
	MoverChar  = '═'
	EnemyChar  = 'W'
	HazardChar = '▲'
	SignChar   = '?'
	SeenChar   = '✓'
	FinishChar = '⚑'
	PlayerChar = '█'
)

// Screen rows reserved around the world view.
const (
	hudRows  = 1 // stage and time badges
	hintRows = 1 // hint badge
)

// projection maps world units onto the cells of the view area.
type projection struct {
	camera float64
	sx, sy float64
	top    int
	w, h   int
}

func newProjection(snap sim.Snapshot, w, h, top int) projection {
	p := projection{camera: snap.Camera, top: top, w: w, h: h, sx: 1, sy: 1}
	if w > 0 && snap.Viewport.W > 0 {
		p.sx = snap.Viewport.W / float64(w)
	}
	if h > 0 && snap.Viewport.H > 0 {
		p.sy = snap.Viewport.H / float64(h)
	}
	return p
}

// rect converts a world box to cells. Any box with area covers at least one cell.
func (p projection) rect(b core.Box) core.Rect {
	x0 := int(math.Floor((b.X - p.camera) / p.sx))
	x1 := int(math.Ceil((b.Right() - p.camera) / p.sx))
	y0 := int(math.Floor(b.Y / p.sy))
	y1 := int(math.Ceil(b.Bottom() / p.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	// Clip to the view area
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, p.w)
	y1 = min(y1, p.h)
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}
	}
	return core.NewRect(x0, y0+p.top, x1-x0, y1-y0)
}

// drawWorld draws the visible part of the world into rows [top, top+h).
func drawWorld(dst *core.Screen, snap sim.Snapshot, top, h int) {
	p := newProjection(snap, dst.Width(), h, top)

	for _, sp := range snap.Sprites {
		r := p.rect(sp.Box)
		if r.W == 0 {
			continue
		}
		switch sp.Kind {
		case sim.VisualGround:
			dst.DrawRect(r, GroundChar, core.ColorGreen)
		case sim.VisualLedge:
			dst.DrawRect(r, LedgeChar, core.ColorBrightBlue)
		case sim.VisualMover:
			dst.DrawRect(r, MoverChar, core.ColorCyan)
		case sim.VisualHazard:
			dst.DrawRect(r, HazardChar, core.ColorOrange)
		case sim.VisualEnemy:
			dst.DrawRect(r, EnemyChar, core.ColorBrightRed)
		case sim.VisualSign:
			drawSign(dst, r, sp, snap.NearLabel == sp.Label && snap.CanInteract)
		case sim.VisualFinish:
			drawFinish(dst, r)
		}
	}

	r := p.rect(snap.Player.Box)
	if r.W > 0 {
		dst.DrawRect(r, PlayerChar, core.ColorBrightWhite)
	}
}

func drawSign(dst *core.Screen, r core.Rect, sp sim.Sprite, glowing bool) {
	glyph, color := SignChar, core.ColorYellow
	if sp.Seen {
		glyph, color = SeenChar, core.ColorGray
	}
	if glowing {
		color = core.ColorBrightYellow
	}
	dst.DrawRect(r, glyph, color)

	if glowing && r.Y > 0 {
		label := sp.Label
		x := r.X + r.W/2 - utf8.RuneCountInString(label)/2
		dst.DrawTextColored(x, r.Y-1, label, core.ColorBrightYellow)
	}
}

func drawFinish(dst *core.Screen, r core.Rect) {
	for y := r.Y + 1; y < r.Bottom(); y++ {
		dst.SetColored(r.X, y, '│', core.ColorBrightMagenta)
	}
	dst.SetColored(r.X, r.Y, FinishChar, core.ColorBrightMagenta)
}

// drawHUD draws the stage and time badges on the top row and the hint on the
// last row.
func drawHUD(dst *core.Screen, snap sim.Snapshot) {
	stage := content.StageBadge(snap.Stage.Index, snap.Stage.Count, snap.Stage.Name)
	dst.DrawTextColored(1, 0, stage, core.ColorBrightCyan)

	clock := content.TimeBadge(snap.Elapsed)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(clock)-1, 0, clock, core.ColorBrightWhite)

	hint := content.HintBadge(snap.CanInteract)
	color := core.ColorGray
	if snap.CanInteract {
		color = core.ColorBrightYellow
	}
	dst.DrawTextCentered(dst.Height()-1, hint, color)
}

// drawToast shows a transient message under the HUD.
func drawToast(dst *core.Screen, text string) {
	if text == "" {
		return
	}
	msg := " " + text + " "
	dst.DrawTextCentered(hudRows+1, msg, core.ColorBrightYellow)
}

// overlayLine is one line of an overlay box.
type overlayLine struct {
	text  string
	color core.Color
}

func line(text string) overlayLine {
	return overlayLine{text: text}
}

func colored(text string, c core.Color) overlayLine {
	return overlayLine{text: text, color: c}
}

// drawOverlay draws a centered box holding lines. Lines longer than the
// screen are truncated.
func drawOverlay(dst *core.Screen, lines []overlayLine) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l.text))
	}

	boxW := min(maxLen+4, dst.Width())
	boxH := min(len(lines)+2, dst.Height())
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)

	inner := boxW - 4
	for i, l := range lines {
		if i >= boxH-2 {
			break
		}
		text := truncate(l.text, inner)
		x := boxX + 2 + (inner-utf8.RuneCountInString(text))/2
		dst.DrawTextColored(x, boxY+1+i, text, l.color)
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// wrap breaks text into lines of at most width cells.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	rendered := lipgloss.NewStyle().Width(width).Render(text)
	var out []string
	for _, l := range strings.Split(rendered, "\n") {
		out = append(out, strings.TrimRight(l, " "))
	}
	return out
}
