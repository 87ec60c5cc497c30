package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/world"
)

const frame = 1.0 / 60

func newPlaying(t *testing.T, def world.Definition) *Simulation {
	t.Helper()
	s := New(def, config.DefaultTuning())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return s
}

// stageWorld returns a world with the given stages and default geometry.
func stageWorld(id string, stages ...world.StageDef) world.Definition {
	return world.Definition{ID: id, Geometry: world.DefaultGeometry(), Stages: stages}
}

func trapWorld() world.Definition {
	return stageWorld("trap",
		world.StageDef{Name: "Intro", Start: 0, Length: 400},
		world.StageDef{Name: "Trap", Start: 400, Length: 1000, Hazards: []world.RectSpec{{X: 300, W: 30, H: 22}}},
	)
}

func shortWorld() world.Definition {
	def := stageWorld("short", world.StageDef{Name: "Only", Start: 0, Length: 400})
	def.Extras = []world.RectSpec{{X: -400, W: 400}}
	return def
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func TestNewStartsInMenu(t *testing.T) {
	s := New(world.Default(), config.DefaultTuning())

	if s.Phase() != PhaseMenu {
		t.Errorf("Phase() = %v, expected menu", s.Phase())
	}
	p := s.Player()
	if p.Box.X != 80 || p.Box.Y != 436 || p.Box.W != 28 || p.Box.H != 40 {
		t.Errorf("player spawn = %+v, expected 28x40 at (80, 436)", p.Box)
	}
	if s.Checkpoint() != 80 {
		t.Errorf("Checkpoint() = %v, expected 80", s.Checkpoint())
	}

	// Menu frames do not advance time.
	s.Step(core.InputOf(core.ActionRight), frame)
	if s.Elapsed() != 0 || s.Player().Box.X != 80 {
		t.Error("menu frame advanced the simulation")
	}

	s.Step(core.InputOf(core.ActionConfirm), frame)
	if s.Phase() != PhasePlaying {
		t.Errorf("after confirm Phase() = %v, expected playing", s.Phase())
	}
}

func TestPhaseTransitions(t *testing.T) {
	s := New(world.Default(), config.DefaultTuning())

	if err := s.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TogglePause() in menu = %v, expected ErrInvalidTransition", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() in menu = %v, expected ErrInvalidTransition", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start() = %v, expected ErrInvalidTransition", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() while playing = %v, expected ErrInvalidTransition", err)
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("rejected transitions changed phase to %v", s.Phase())
	}

	for i := 0; i < 30; i++ {
		s.Step(core.InputOf(core.ActionRight), frame)
	}
	if err := s.TogglePause(); err != nil {
		t.Fatalf("TogglePause() error = %v", err)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() from paused error = %v", err)
	}
	if s.Phase() != PhasePlaying || s.Elapsed() != 0 || s.Player().Box.X != 80 {
		t.Errorf("Restart() did not rebuild: phase %v, elapsed %v, x %v", s.Phase(), s.Elapsed(), s.Player().Box.X)
	}
}

func TestPauseResumeIdentity(t *testing.T) {
	s := newPlaying(t, world.Default())
	right := core.InputOf(core.ActionRight)

	for i := 0; i < 30; i++ {
		s.Step(right, frame)
	}
	before := s.Player()
	elapsed := s.Elapsed()

	if res := s.Step(core.InputOf(core.ActionPause, core.ActionRight), frame); res.Phase != PhasePaused {
		t.Fatalf("Phase after pause = %v, expected paused", res.Phase)
	}
	for i := 0; i < 50; i++ {
		s.Step(core.InputOf(core.ActionRight, core.ActionJump), frame)
	}
	if s.Elapsed() != elapsed {
		t.Errorf("elapsed advanced while paused: %v -> %v", elapsed, s.Elapsed())
	}

	if res := s.Step(core.InputOf(core.ActionPause), frame); res.Phase != PhasePlaying {
		t.Fatalf("Phase after resume = %v, expected playing", res.Phase)
	}
	if s.Player() != before {
		t.Errorf("player after resume = %+v, expected %+v", s.Player(), before)
	}
	if s.Elapsed() != elapsed {
		t.Errorf("elapsed after resume = %v, expected %v", s.Elapsed(), elapsed)
	}
}

func TestHazardRespawnsAtCheckpoint(t *testing.T) {
	s := newPlaying(t, trapWorld())
	right := core.InputOf(core.ActionRight)

	for i := 0; i < 600; i++ {
		res := s.Step(right, frame)
		for _, e := range res.Events {
			r, ok := e.(EventRespawn)
			if !ok {
				continue
			}
			if r.Reason != ReasonHazard {
				t.Fatalf("respawn reason = %q, expected %q", r.Reason, ReasonHazard)
			}
			p := s.Player()
			if p.Box.X != 440 {
				t.Errorf("respawn x = %v, expected checkpoint 440", p.Box.X)
			}
			if p.Box.Y != 436 || p.VX != 0 || p.VY != 0 {
				t.Errorf("respawned player = %+v, expected at rest on the floor", p)
			}
			if s.Elapsed() < 1.2 {
				t.Errorf("elapsed = %v, expected respawn penalty included", s.Elapsed())
			}
			if snap := s.Snapshot(); snap.Notice != ReasonHazard || snap.Respawns != 1 {
				t.Errorf("snapshot notice = %q respawns = %d", snap.Notice, snap.Respawns)
			}
			return
		}
	}
	t.Fatal("player never hit the hazard")
}

func TestDefaultWorldFirstHazard(t *testing.T) {
	s := newPlaying(t, world.Default())
	right := core.InputOf(core.ActionRight)
	want := math.Max(s.World().Geometry.SpawnX, 0+s.Tuning().Rules.CheckpointOffset)

	for i := 0; i < 600; i++ {
		res := s.Step(right, frame)
		if countEvents[EventRespawn](res.Events) == 0 {
			continue
		}
		if r := res.Events[len(res.Events)-1].(EventRespawn); r.Reason != ReasonHazard {
			t.Errorf("reason = %q, expected %q", r.Reason, ReasonHazard)
		}
		if x := s.Player().Box.X; x != want {
			t.Errorf("respawn x = %v, expected %v", x, want)
		}
		if s.CurrentStage(s.Player().Box.X) != 0 {
			t.Errorf("respawned outside the first stage")
		}
		return
	}
	t.Fatal("player never reached the first hazard")
}

func TestPitRespawn(t *testing.T) {
	s := newPlaying(t, stageWorld("pit", world.StageDef{
		Name: "Gap", Start: 0, Length: 1000, Gaps: []world.Gap{{X: 200, W: 200}},
	}))
	right := core.InputOf(core.ActionRight)

	for i := 0; i < 600; i++ {
		res := s.Step(right, frame)
		if countEvents[EventRespawn](res.Events) == 0 {
			continue
		}
		if r := res.Events[len(res.Events)-1].(EventRespawn); r.Reason != ReasonPit {
			t.Errorf("reason = %q, expected %q", r.Reason, ReasonPit)
		}
		if s.Player().Box.X != 80 {
			t.Errorf("respawn x = %v, expected 80", s.Player().Box.X)
		}
		return
	}
	t.Fatal("player never fell into the pit")
}

func TestFinishExactlyOnce(t *testing.T) {
	s := newPlaying(t, shortWorld())
	right := core.InputOf(core.ActionRight)

	finishes := 0
	for i := 0; i < 600 && s.Phase() == PhasePlaying; i++ {
		finishes += countEvents[EventFinished](s.Step(right, frame).Events)
	}
	if s.Phase() != PhaseFinished || !s.Finished() {
		t.Fatalf("Phase() = %v, expected finished", s.Phase())
	}
	if x := s.Player().Box.X; x <= 620 {
		t.Errorf("finished at x = %v, expected past 620", x)
	}

	elapsed := s.Elapsed()
	player := s.Player()
	for i := 0; i < 60; i++ {
		res := s.Step(core.InputOf(core.ActionRight, core.ActionPause), frame)
		finishes += countEvents[EventFinished](res.Events)
	}
	if finishes != 1 {
		t.Errorf("EventFinished emitted %d times, expected 1", finishes)
	}
	if s.Elapsed() != elapsed || s.Player() != player {
		t.Error("finished run kept advancing")
	}

	c := s.Completion()
	if c.Stages != 1 || c.Elapsed != elapsed {
		t.Errorf("Completion() = %+v", c)
	}

	s.Step(core.InputOf(core.ActionRestart), frame)
	if s.Phase() != PhasePlaying || s.Finished() {
		t.Errorf("restart from finished: phase %v finished %v", s.Phase(), s.Finished())
	}
}

func TestCheckpointMonotonic(t *testing.T) {
	s := newPlaying(t, trapWorld())

	last := s.Checkpoint()
	for i := 0; i < 3000; i++ {
		in := core.InputOf(core.ActionRight)
		if i%300 > 240 {
			in = core.InputOf(core.ActionLeft)
		}
		s.Step(in, frame)
		cp := s.Checkpoint()
		if cp < last {
			t.Fatalf("checkpoint regressed at frame %d: %v -> %v", i, last, cp)
		}
		last = cp
	}
	if last != 440 {
		t.Errorf("final checkpoint = %v, expected 440", last)
	}
}

func TestInteractWithSign(t *testing.T) {
	s := newPlaying(t, world.Default())

	if _, ok := s.Interact(); ok {
		t.Error("Interact() at spawn should find no sign")
	}

	right := core.InputOf(core.ActionRight)
	for i := 0; i < 300 && !s.CanInteract(); i++ {
		s.Step(right, frame)
	}
	if !s.CanInteract() {
		t.Fatal("never came in range of the About sign")
	}
	if snap := s.Snapshot(); snap.NearLabel != "About" {
		t.Errorf("NearLabel = %q, expected About", snap.NearLabel)
	}

	res := s.Step(core.InputOf(core.ActionInteract), frame)
	var label string
	for _, e := range res.Events {
		if c, ok := e.(EventContent); ok {
			label = c.Label
		}
	}
	if label != "About" {
		t.Errorf("content label = %q, expected About", label)
	}
	if c := s.Completion(); c.Discovered != 1 || c.Signs != 4 {
		t.Errorf("Completion() discovered %d/%d, expected 1/4", c.Discovered, c.Signs)
	}
}

func TestSetDefinitionAppliesOnRestart(t *testing.T) {
	s := newPlaying(t, world.Default())
	s.SetDefinition(shortWorld())

	if s.World().ID != world.DefaultID {
		t.Error("definition applied mid-run")
	}
	if err := s.TogglePause(); err != nil {
		t.Fatal(err)
	}
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	if s.World().ID != "short" {
		t.Errorf("after restart world = %q, expected short", s.World().ID)
	}
}

func TestSnapshotCamera(t *testing.T) {
	s := newPlaying(t, world.Default())

	tests := []struct {
		x        float64
		expected float64
	}{
		{80, 0},
		{1000, 1000 - 960*0.35},
		{6300, 6400 - 960},
	}
	for _, tc := range tests {
		s.player.Box.X = tc.x
		if got := s.Snapshot().Camera; math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("camera at x=%v = %v, expected %v", tc.x, got, tc.expected)
		}
	}

	short := newPlaying(t, stageWorld("tiny", world.StageDef{Name: "a", Length: 100}))
	short.player.Box.X = 400
	if got := short.Snapshot().Camera; got != 0 {
		t.Errorf("camera in a world shorter than the viewport = %v, expected 0", got)
	}
}

func TestSnapshotContents(t *testing.T) {
	s := newPlaying(t, world.Default())
	snap := s.Snapshot()

	counts := make(map[Visual]int)
	for _, sp := range snap.Sprites {
		counts[sp.Kind]++
	}
	if counts[VisualSign] != 4 || counts[VisualFinish] != 1 || counts[VisualEnemy] != 1 || counts[VisualMover] != 1 {
		t.Errorf("sprite counts = %v", counts)
	}
	if counts[VisualLedge] != 2 || counts[VisualHazard] != 5 {
		t.Errorf("sprite counts = %v", counts)
	}
	if snap.Stage.Index != 0 || snap.Stage.Count != 4 || snap.Stage.Name != "About" {
		t.Errorf("Stage = %+v", snap.Stage)
	}
	if snap.SignCount != 4 || snap.Discovered != 0 {
		t.Errorf("signs %d/%d", snap.Discovered, snap.SignCount)
	}
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		in := core.InputOf(core.ActionRight)
		if i%50 < 12 {
			in.Set(core.ActionJump)
		}
		if i%400 == 399 {
			in.Set(core.ActionInteract)
		}
		return in
	}

	a := newPlaying(t, world.Default())
	b := newPlaying(t, world.Default())
	for i := 0; i < 1500; i++ {
		a.Step(script(i), frame)
		b.Step(script(i), frame)
		if ha, hb := a.Snapshot().Hash(), b.Snapshot().Hash(); ha != hb {
			t.Fatalf("hash diverged at frame %d: %d != %d", i, ha, hb)
		}
	}
}

func TestFixedDifficultyKeepsBaseParameters(t *testing.T) {
	tune := config.DefaultTuning()
	tune.Difficulty.Enabled = false
	tune.Difficulty.InitialLevel = 0.5

	s := New(world.Default(), tune)
	w := s.World()
	if len(w.Enemies) == 0 || len(w.Movers) == 0 {
		t.Fatal("default world should have enemies and movers")
	}
	if got := w.Enemies[0].Speed; got != tune.Rules.EnemySpeed {
		t.Errorf("enemy speed = %v, expected %v", got, tune.Rules.EnemySpeed)
	}
	if got := w.Movers[0].Amplitude; got != 40 {
		t.Errorf("mover amplitude = %v, expected 40", got)
	}
}
