package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/storage"
)

// menuLines is the start screen.
func menuLines(worldTitle string, stages int, worldCount int, width int) []overlayLine {
	lines := []overlayLine{
		colored("Interactive Resume Game", core.ColorBrightCyan),
		line(""),
	}
	for _, l := range strings.Split(content.Intro(stages), "\n") {
		for _, w := range wrap(l, width) {
			lines = append(lines, line(w))
		}
	}
	lines = append(lines, line(""))
	if worldCount > 1 {
		lines = append(lines, colored("World: ◀ "+worldTitle+" ▶", core.ColorBrightWhite))
	} else {
		lines = append(lines, colored("World: "+worldTitle, core.ColorBrightWhite))
	}
	lines = append(lines,
		line(""),
		colored("Press Enter to start", core.ColorBrightGreen),
		colored("?: how to play • Tab: records • Q: quit", core.ColorGray),
	)
	return lines
}

// pauseLines is the pause screen with the quick links.
func pauseLines(links []content.Link) []overlayLine {
	lines := []overlayLine{
		colored("PAUSED", core.ColorBrightYellow),
		line(""),
		line("Esc: resume • R: restart • Q: quit"),
	}
	if len(links) > 0 {
		lines = append(lines, line(""), colored("Quick links", core.ColorBrightCyan))
		lines = append(lines, linkLines(links)...)
	}
	return lines
}

// finishLines is the end-of-run screen.
func finishLines(c sim.Completion, b content.Bundle, best *storage.Run, showShare bool, width int) []overlayLine {
	lines := []overlayLine{
		colored("Thanks for playing!", core.ColorBrightGreen),
		line(""),
		line(content.Summary(c.Stages, c.Elapsed)),
		line(content.DiscoveredLine(c.Discovered, c.Signs)),
		line(fmt.Sprintf("Respawns: %d • Bugs squashed: %d", c.Respawns, c.Stomps)),
	}
	if best != nil {
		lines = append(lines, colored("Best: "+content.FormatTime(best.Elapsed.Seconds())+" by "+best.Player, core.ColorBrightYellow))
	}
	if len(b.Links) > 0 {
		lines = append(lines, line(""))
		lines = append(lines, linkLines(b.Links)...)
	}
	if showShare {
		lines = append(lines, line(""))
		for _, l := range strings.Split(b.ShareText(c.Elapsed), "\n") {
			for _, w := range wrap(l, width) {
				lines = append(lines, colored(w, core.ColorBrightWhite))
			}
		}
	}
	lines = append(lines,
		line(""),
		colored("C: share • R: play again • Tab: records • Q: quit", core.ColorGray),
	)
	return lines
}

// panelLines renders a content panel.
func panelLines(p content.Panel, width int) []overlayLine {
	lines := []overlayLine{colored(p.Title, core.ColorBrightCyan)}
	if p.Subtitle != "" {
		lines = append(lines, colored(p.Subtitle, core.ColorBrightWhite))
	}
	if p.Body != "" {
		lines = append(lines, line(""))
		for _, w := range wrap(p.Body, width) {
			lines = append(lines, line(w))
		}
	}
	if len(p.Items) > 0 {
		lines = append(lines, line(""))
		if p.Title == "Skills" {
			pills := make([]string, len(p.Items))
			for i, item := range p.Items {
				pills[i] = "[" + item + "]"
			}
			for _, w := range wrap(strings.Join(pills, " "), width) {
				lines = append(lines, colored(w, core.ColorBrightMagenta))
			}
		} else {
			for _, item := range p.Items {
				for _, w := range wrap("• "+item, width) {
					lines = append(lines, line(w))
				}
			}
		}
	}
	if len(p.Links) > 0 {
		lines = append(lines, line(""))
		lines = append(lines, linkLines(p.Links)...)
	}
	lines = append(lines, line(""), colored("Enter: close", core.ColorGray))
	return lines
}

// helpLines is the how-to-play box.
func helpLines() []overlayLine {
	var lines []overlayLine
	for i, l := range strings.Split(content.Controls(), "\n") {
		if i == 0 {
			lines = append(lines, colored(l, core.ColorBrightCyan))
			continue
		}
		lines = append(lines, line(l))
	}
	return append(lines, line(""), colored("?: close", core.ColorGray))
}

func linkLines(links []content.Link) []overlayLine {
	lines := make([]overlayLine, 0, len(links))
	for _, l := range links {
		if l.URL == "" || l.URL == "#" {
			lines = append(lines, colored(l.Label, core.ColorBrightBlue))
			continue
		}
		lines = append(lines, colored(l.Label+": "+l.URL, core.ColorBrightBlue))
	}
	return lines
}
