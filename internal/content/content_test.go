package content

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{9.99, "0:09"},
		{61.2, "1:01"},
		{600, "10:00"},
		{-3, "0:00"},
	}

	for _, tc := range tests {
		if got := FormatTime(tc.seconds); got != tc.expected {
			t.Errorf("FormatTime(%v) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestSummaryTexts(t *testing.T) {
	if got := Summary(4, 75.5); got != "Completed 4/4 stages in 1:15." {
		t.Errorf("Summary() = %q", got)
	}
	if got := Default().ShareText(75.5); got != "Your Name – Web Developer\nCompleted the Interactive Resume Game in 1:15." {
		t.Errorf("ShareText() = %q", got)
	}
	if got := StageBadge(0, 4, "About"); got != "Stage: 1/4 – About" {
		t.Errorf("StageBadge() = %q", got)
	}
	if got := DiscoveredLine(3, 4); got != "Discovered 3/4 panels." {
		t.Errorf("DiscoveredLine() = %q", got)
	}
	if HintBadge(true) != HintInteract || HintBadge(false) != HintControls {
		t.Error("HintBadge() returned the wrong hint")
	}
}

func TestPanel(t *testing.T) {
	b := Default()

	tests := []struct {
		label     string
		wantTitle string
		check     func(Panel) bool
	}{
		{"About", "About – Your Name", func(p Panel) bool { return p.Subtitle == "Web Developer" && p.Body != "" }},
		{"Skills", "Skills", func(p Panel) bool { return len(p.Items) == 13 }},
		{"Projects", "Projects", func(p Panel) bool { return len(p.Items) == 2 && !strings.Contains(p.Items[0], "(#)") }},
		{"Links", "Links", func(p Panel) bool { return len(p.Links) == 4 }},
		{"Secret", "Secret", func(p Panel) bool { return p.Body == "" && len(p.Items) == 0 }},
	}

	for _, tc := range tests {
		p := b.Panel(tc.label)
		if p.Title != tc.wantTitle {
			t.Errorf("Panel(%q).Title = %q, expected %q", tc.label, p.Title, tc.wantTitle)
		}
		if !tc.check(p) {
			t.Errorf("Panel(%q) = %+v", tc.label, p)
		}
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	b, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(b, Default()) {
		t.Errorf("embedded content differs from Default():\n%+v", b)
	}
}

func TestLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := "candidate:\n  name: Ada\n  title: Engineer\nskills: [Go]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Candidate.Name != "Ada" || len(b.Skills) != 1 {
		t.Errorf("Load() = %+v", b)
	}
	if len(b.Links) != 4 {
		t.Errorf("missing keys should keep defaults, links = %d", len(b.Links))
	}
	if !strings.HasPrefix(b.ShareText(0), "Ada – Engineer") {
		t.Errorf("ShareText() = %q", b.ShareText(0))
	}
}
