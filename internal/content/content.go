// Package content holds the resume shown on signs and the texts derived from
// a finished run.
package content

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/resume-run/internal/config"
)

//go:embed defaults/content.yaml
var defaultContentYAML []byte

// Candidate identifies the person the resume is about.
type Candidate struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	About string `yaml:"about"`
}

// Project is a portfolio entry. A URL of "#" or "" means no link.
type Project struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Note string `yaml:"note"`
}

// HasURL reports whether the project links anywhere.
func (p Project) HasURL() bool {
	return p.URL != "" && p.URL != "#"
}

// Link is an external profile link.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Bundle is the full resume.
type Bundle struct {
	Candidate Candidate `yaml:"candidate"`
	Skills    []string  `yaml:"skills"`
	Projects  []Project `yaml:"projects"`
	Links     []Link    `yaml:"links"`
}

// Default returns the built-in placeholder resume.
func Default() Bundle {
	return Bundle{
		Candidate: Candidate{
			Name:  "Your Name",
			Title: "Web Developer",
			About: "A passionate developer creating immersive web experiences with modern technologies and gaming-inspired aesthetics.",
		},
		Skills: []string{
			"React", "TypeScript", "JavaScript", "Tailwind CSS", "Node.js", "Next.js", "HTML5 Canvas",
			"WebGL", "Three.js", "Animation", "Game Development", "UI/UX Design", "Performance Optimization",
		},
		Projects: []Project{
			{Name: "Gaming Portfolio", URL: "#", Note: "Interactive resume game built with HTML5 Canvas, featuring physics-based gameplay and smooth animations."},
			{Name: "Web App Dashboard", URL: "#", Note: "Modern React dashboard with dark theme, real-time data visualization, and responsive design."},
		},
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com"},
			{Label: "LinkedIn", URL: "https://linkedin.com"},
			{Label: "Portfolio", URL: "#"},
			{Label: "Email", URL: "mailto:hello@example.com"},
		},
	}
}

// Load loads the resume.
// Search order: customPath -> ~/.runner/configs/content.yaml -> ./configs/content.yaml -> embedded default
func Load(customPath string) (Bundle, error) {
	return config.LoadYAML(customPath, "content.yaml", defaultContentYAML, Default)
}

// Panel is the displayable content behind a sign label.
type Panel struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Body     string   `json:"body,omitempty"`
	Items    []string `json:"items,omitempty"`
	Links    []Link   `json:"links,omitempty"`
}

// Panel resolves a sign label. Unknown labels get a panel with only a title.
func (b Bundle) Panel(label string) Panel {
	switch label {
	case "About":
		return Panel{
			Title:    "About – " + b.Candidate.Name,
			Subtitle: b.Candidate.Title,
			Body:     b.Candidate.About,
		}
	case "Skills":
		return Panel{Title: "Skills", Items: append([]string(nil), b.Skills...)}
	case "Projects":
		items := make([]string, 0, len(b.Projects))
		for _, p := range b.Projects {
			line := p.Name + " – " + p.Note
			if p.HasURL() {
				line += " (" + p.URL + ")"
			}
			items = append(items, line)
		}
		return Panel{Title: "Projects", Items: items}
	case "Links":
		return Panel{Title: "Links", Links: append([]Link(nil), b.Links...)}
	default:
		return Panel{Title: label}
	}
}

// FormatTime renders seconds as m:ss, truncating fractions.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Summary is the finish screen headline.
func Summary(stages int, elapsed float64) string {
	return fmt.Sprintf("Completed %d/%d stages in %s.", stages, stages, FormatTime(elapsed))
}

// DiscoveredLine reports how many panels were opened.
func DiscoveredLine(discovered, total int) string {
	return fmt.Sprintf("Discovered %d/%d panels.", discovered, total)
}

// ShareText is the text copied by the share action.
func (b Bundle) ShareText(elapsed float64) string {
	return fmt.Sprintf("%s – %s\nCompleted the Interactive Resume Game in %s.",
		b.Candidate.Name, b.Candidate.Title, FormatTime(elapsed))
}

// StageBadge is the HUD stage indicator. index is zero-based.
func StageBadge(index, count int, name string) string {
	return fmt.Sprintf("Stage: %d/%d – %s", index+1, count, name)
}

// TimeBadge is the HUD clock.
func TimeBadge(elapsed float64) string {
	return "Time: " + FormatTime(elapsed)
}

// Hint texts for the HUD.
const (
	HintControls = "Arrows: move • Space: jump • E: interact • Esc: pause"
	HintInteract = "Press E to open panel"
)

// HintBadge returns the HUD hint.
func HintBadge(canInteract bool) string {
	if canInteract {
		return HintInteract
	}
	return HintControls
}

// Controls is the "how to play" help.
func Controls() string {
	return strings.Join([]string{
		"Controls:",
		"• Left/Right: move",
		"• Space: jump",
		"• E: interact near glowing signs",
		"• Esc: pause",
	}, "\n")
}

// Intro is the menu blurb.
func Intro(stages int) string {
	return fmt.Sprintf("A fun and challenging way to get to know me - with every level you unlock, you'll discover more about who I am.\n"+
		"Use Arrows to move, Space to jump. Press E near the info panels to open it.\n%d short stages.", stages)
}
