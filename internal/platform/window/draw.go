package window

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
)

// basicfont metrics.
const (
	glyphW = 7
	glyphH = 13
	lineH  = 16
)

var face = text.NewGoXFace(basicfont.Face7x13)

const overlayWidth = 72 // characters

var (
	background  = color.RGBA{R: 0x12, G: 0x16, B: 0x1f, A: 0xff}
	overlayFill = color.RGBA{R: 0x0d, G: 0x11, B: 0x17, A: 0xe0}
)

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// spriteColor picks the fill for a sprite.
func spriteColor(sp sim.Sprite, glowing bool) color.RGBA {
	switch sp.Kind {
	case sim.VisualGround:
		return rgba(core.ColorGreen)
	case sim.VisualLedge:
		return rgba(core.ColorBrightBlue)
	case sim.VisualMover:
		return rgba(core.ColorCyan)
	case sim.VisualHazard:
		return rgba(core.ColorOrange)
	case sim.VisualEnemy:
		return rgba(core.ColorBrightRed)
	case sim.VisualSign:
		switch {
		case glowing:
			return rgba(core.ColorBrightYellow)
		case sp.Seen:
			return rgba(core.ColorGray)
		default:
			return rgba(core.ColorYellow)
		}
	case sim.VisualFinish:
		return rgba(core.ColorBrightMagenta)
	}
	return rgba(core.ColorWhite)
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.snap
	screen.Fill(background)

	for _, sp := range snap.Sprites {
		glowing := sp.Kind == sim.VisualSign && snap.CanInteract && snap.NearLabel == sp.Label
		fillBox(screen, sp.Box, snap.Camera, spriteColor(sp, glowing))
		if glowing {
			x := int(sp.Box.X-snap.Camera) + int(sp.Box.W)/2 - len(sp.Label)*glyphW/2
			printAt(screen, sp.Label, x, int(sp.Box.Y)-glyphH-4)
		}
	}
	fillBox(screen, snap.Player.Box, snap.Camera, rgba(core.ColorBrightWhite))

	g.drawHUD(screen, snap)

	switch {
	case snap.Phase == sim.PhaseMenu:
		def := g.sim.Definition()
		lines := append([]string{def.Title, ""}, wrapLines(content.Intro(len(def.Stages)), overlayWidth-4)...)
		lines = append(lines, "", "Enter: start   Q: quit")
		drawOverlay(screen, lines)
	case snap.Phase == sim.PhaseFinished && g.completion != nil:
		drawOverlay(screen, g.finishLines())
	case snap.Phase == sim.PhasePaused:
		lines := []string{"Paused", ""}
		for _, l := range g.content.Links {
			lines = append(lines, l.Label+": "+l.URL)
		}
		lines = append(lines, "", strings.Split(content.Controls(), "\n")...)
		lines = append(lines, "", "Esc: resume   R: restart")
		drawOverlay(screen, lines)
	case g.panel != nil:
		drawOverlay(screen, panelLines(*g.panel))
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	w := int(snap.Viewport.W)
	h := int(snap.Viewport.H)

	printAt(screen, content.StageBadge(snap.Stage.Index, snap.Stage.Count, snap.Stage.Name), 12, 8)
	clock := content.TimeBadge(snap.Elapsed)
	printAt(screen, clock, w-12-len(clock)*glyphW, 8)

	hint := content.HintBadge(snap.CanInteract)
	printAt(screen, hint, (w-len(hint)*glyphW)/2, h-glyphH-8)

	toast := snap.Notice
	if toast == "" {
		toast = g.flash
	}
	if toast != "" {
		printAt(screen, toast, (w-len(toast)*glyphW)/2, 8+glyphH*2)
	}
}

func (g *Game) finishLines() []string {
	c := *g.completion
	lines := []string{
		"Run complete!",
		"",
		content.Summary(c.Stages, c.Elapsed),
		content.DiscoveredLine(c.Discovered, c.Signs),
		"",
	}
	if g.best != nil {
		lines = append(lines, "Best: "+content.FormatTime(g.best.Elapsed.Seconds()))
	}
	lines = append(lines, wrapLines(g.content.ShareText(c.Elapsed), overlayWidth-4)...)
	return append(lines, "", "R: play again   Q: quit")
}

func panelLines(p content.Panel) []string {
	lines := []string{p.Title}
	if p.Subtitle != "" {
		lines = append(lines, p.Subtitle)
	}
	lines = append(lines, "")
	if p.Body != "" {
		lines = append(lines, wrapLines(p.Body, overlayWidth-4)...)
	}
	for _, item := range p.Items {
		lines = append(lines, wrapLines("- "+item, overlayWidth-4)...)
	}
	for _, l := range p.Links {
		lines = append(lines, l.Label+": "+l.URL)
	}
	return append(lines, "", "Enter/Esc: close")
}

// printAt draws white text with its top-left corner at (x, y).
func printAt(screen *ebiten.Image, str string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(rgba(core.ColorBrightWhite))
	text.Draw(screen, str, face, op)
}

// fillBox draws a world-space box shifted by the camera.
func fillBox(screen *ebiten.Image, b core.Box, camera float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(b.X-camera), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

// drawOverlay draws lines in a centered box.
func drawOverlay(screen *ebiten.Image, lines []string) {
	bounds := screen.Bounds()
	w := overlayWidth * glyphW
	h := (len(lines) + 2) * lineH
	x := (bounds.Dx() - w) / 2
	y := max((bounds.Dy()-h)/2, 0)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), overlayFill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, rgba(core.ColorBrightCyan), false)

	for i, line := range lines {
		printAt(screen, line, x+2*glyphW, y+(i+1)*lineH)
	}
}

// wrapLines breaks text into lines of at most width characters, keeping
// existing line breaks.
func wrapLines(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return out
}
