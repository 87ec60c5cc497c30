package world

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleWorld = `
id: tiny
title: Tiny
stages:
  - name: One
    start: 0
    length: 500
    signs:
      - x: 100
        label: About
  - name: Two
    start: 500
    length: 500
    gaps:
      - x: 200
        w: 60
    enemies:
      - x: 300
        w: 26
        h: 24
        patrol: 100
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sampleWorld))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if def.ID != "tiny" || len(def.Stages) != 2 {
		t.Fatalf("Parse() = %+v", def)
	}
	if def.Geometry != DefaultGeometry() {
		t.Errorf("missing geometry should default, got %+v", def.Geometry)
	}
	if def.Stages[1].Enemies[0].Patrol != 100 || def.Stages[1].Enemies[0].W != 26 {
		t.Errorf("enemy spec = %+v", def.Stages[1].Enemies[0])
	}
	if def.Length() != 1400 {
		t.Errorf("Length() = %v, expected 1400", def.Length())
	}
}

func TestParseRejectsBadStages(t *testing.T) {
	data := strings.Replace(sampleWorld, "start: 500", "start: 550", 1)
	_, err := Parse([]byte(data))
	if !errors.Is(err, ErrStageGap) {
		t.Errorf("Parse() error = %v, expected ErrStageGap", err)
	}

	if _, err := Parse([]byte("title: no id\nstages: []\n")); err == nil {
		t.Error("expected error for definition without id")
	}
}

func TestMarshalDefaultRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	def, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(def, Default()) {
		t.Errorf("round trip changed the default world:\n%s", data)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", sampleWorld)
	write("a.yml", strings.Replace(sampleWorld, "id: tiny", "id: alpha", 1))
	write("broken.yaml", "id: [")
	write("notes.txt", "ignored")

	defs, err := Loader{Root: dir}.LoadAll()
	if err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("LoadAll() error = %v, expected broken.yaml to be reported", err)
	}
	if len(defs) != 2 || defs[0].ID != "alpha" || defs[1].ID != "tiny" {
		t.Errorf("LoadAll() loaded %d worlds in wrong order", len(defs))
	}

	defs, err = Loader{Root: filepath.Join(dir, "missing")}.LoadAll()
	if err != nil || len(defs) != 0 {
		t.Errorf("missing dir: LoadAll() = %v, %v; expected nothing", defs, err)
	}
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("json.Marshal(Schema()) error = %v", err)
	}
	for _, want := range []string{"Runner World", "stages", "trailing_margin", "patrol"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestWatcherReportsWorldFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(path, []byte(sampleWorld), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event = %q, expected %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWatcherDebouncesRepeatedWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "w.yaml")
	if err := os.WriteFile(path, []byte("id: partial"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	lastWrite := time.Now()
	if err := os.WriteFile(path, []byte(sampleWorld), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event = %q, expected %q", got, path)
		}
		if since := time.Since(lastWrite); since < debounce {
			t.Errorf("event arrived %v after the last write, expected at least %v", since, debounce)
		}
		def, err := LoadFile(got)
		if err != nil {
			t.Fatalf("LoadFile() after event error = %v", err)
		}
		if def.ID != "tiny" {
			t.Errorf("loaded id = %q, expected %q", def.ID, "tiny")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}

	select {
	case got := <-w.Events:
		t.Errorf("unexpected second event %q", got)
	case <-time.After(3 * debounce):
	}
}
