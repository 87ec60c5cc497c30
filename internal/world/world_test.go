package world

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/vovakirdan/resume-run/internal/config"
)

func TestGroundWithGapsTiling(t *testing.T) {
	stage := Stage{Name: "s", Start: 1000, Length: 1000}

	tests := []struct {
		name      string
		gaps      []Gap
		wantSpans [][2]float64
	}{
		{
			name:      "no gaps",
			wantSpans: [][2]float64{{1000, 2000}},
		},
		{
			name:      "unsorted gaps",
			gaps:      []Gap{{X: 600, W: 100}, {X: 200, W: 50}},
			wantSpans: [][2]float64{{1000, 1200}, {1250, 1600}, {1700, 2000}},
		},
		{
			name:      "overlapping gaps merge",
			gaps:      []Gap{{X: 100, W: 200}, {X: 150, W: 50}},
			wantSpans: [][2]float64{{1000, 1100}, {1300, 2000}},
		},
		{
			name:      "gap at start",
			gaps:      []Gap{{X: 0, W: 100}},
			wantSpans: [][2]float64{{1100, 2000}},
		},
		{
			name:      "gap past the end",
			gaps:      []Gap{{X: 900, W: 500}},
			wantSpans: [][2]float64{{1000, 1900}},
		},
		{
			name:      "zero and negative widths ignored",
			gaps:      []Gap{{X: 300, W: 0}, {X: 400, W: -20}},
			wantSpans: [][2]float64{{1000, 2000}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			solids := GroundWithGaps(stage, tc.gaps, 476, 64)
			if len(solids) != len(tc.wantSpans) {
				t.Fatalf("got %d spans, expected %d: %+v", len(solids), len(tc.wantSpans), solids)
			}
			for i, s := range solids {
				if s.Box.X != tc.wantSpans[i][0] || s.Box.Right() != tc.wantSpans[i][1] {
					t.Errorf("span %d = [%v, %v), expected [%v, %v)", i, s.Box.X, s.Box.Right(), tc.wantSpans[i][0], tc.wantSpans[i][1])
				}
				if s.Box.Y != 476 || s.Box.H != 64 || s.Kind != KindGround {
					t.Errorf("span %d has wrong floor placement: %+v", i, s)
				}
			}
		})
	}
}

// Ground plus gaps must cover every point of the stage exactly once.
func TestGroundWithGapsCoverage(t *testing.T) {
	stage := Stage{Start: 0, Length: 1600}
	gaps := []Gap{{X: 420, W: 80}, {X: 900, W: 120}}
	solids := GroundWithGaps(stage, gaps, 0, 10)

	covered := 0.0
	for _, s := range solids {
		covered += s.Box.W
	}
	for _, g := range gaps {
		covered += g.W
	}
	if covered != stage.Length {
		t.Errorf("ground + gaps cover %v, expected %v", covered, stage.Length)
	}

	sort.Slice(solids, func(i, j int) bool { return solids[i].Box.X < solids[j].Box.X })
	for i := 1; i < len(solids); i++ {
		if solids[i].Box.X < solids[i-1].Box.Right() {
			t.Errorf("spans %d and %d overlap", i-1, i)
		}
	}
}

func TestStagesValidate(t *testing.T) {
	tests := []struct {
		name    string
		stages  Stages
		wantErr error
	}{
		{"contiguous", Stages{{Start: 0, Length: 100}, {Start: 100, Length: 50}}, nil},
		{"gap", Stages{{Start: 0, Length: 100}, {Start: 120, Length: 50}}, ErrStageGap},
		{"overlap", Stages{{Start: 0, Length: 100}, {Start: 80, Length: 50}}, ErrStageOverlap},
		{"empty", nil, ErrNoStages},
	}

	for _, tc := range tests {
		err := tc.stages.Validate()
		if tc.wantErr == nil && err != nil {
			t.Errorf("%s: Validate() = %v, expected nil", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: Validate() = %v, expected %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestStagesIndexAt(t *testing.T) {
	stages := Default().StageList()

	tests := []struct {
		x        float64
		expected int
	}{
		{-50, 0},
		{0, 0},
		{1399, 0},
		{1400, 1},
		{3500, 2},
		{9000, 3},
	}
	for _, tc := range tests {
		if got := stages.IndexAt(tc.x); got != tc.expected {
			t.Errorf("IndexAt(%v) = %d, expected %d", tc.x, got, tc.expected)
		}
	}
}

func TestBuildDefault(t *testing.T) {
	w := Build(Default(), Options{EnemySpeed: 60})

	if w.Length != 6400 {
		t.Errorf("Length = %v, expected 6400", w.Length)
	}
	if got := len(w.Signs()); got != 4 {
		t.Errorf("signs = %d, expected 4", got)
	}
	if got := len(w.Hazards); got != 5 {
		t.Errorf("hazards = %d, expected 5", got)
	}
	if len(w.Movers) != 1 || len(w.Enemies) != 1 {
		t.Fatalf("movers = %d, enemies = %d, expected 1 and 1", len(w.Movers), len(w.Enemies))
	}

	gate := w.Gate()
	if gate == nil {
		t.Fatal("expected a finish gate")
	}
	if gate.Box.X != 6240 || gate.Box.Y != 476-GateHeight {
		t.Errorf("gate at (%v, %v), expected (6240, %v)", gate.Box.X, gate.Box.Y, 476-GateHeight)
	}

	e := w.Enemies[0]
	if e.Box.X != 4100 || e.Left != 4100 || e.Right != 4280 || e.Dir != 1 || e.Speed != 60 {
		t.Errorf("enemy = %+v, expected patrol [4100, 4280] at speed 60", e)
	}
	if e.Box.Bottom() != 476 {
		t.Errorf("enemy bottom = %v, expected to rest on the floor", e.Box.Bottom())
	}

	m := w.Movers[0]
	if m.Box.Y != 396 || m.BaseY != 396 || m.Amplitude != 40 {
		t.Errorf("mover = %+v, expected base 396 amplitude 40", m)
	}

	var extra bool
	for _, s := range w.Solids {
		if s.Box.X == 6100 && s.Box.W == 400 && s.Box.H == 64 {
			extra = true
		}
	}
	if !extra {
		t.Error("expected ground slab under the finish flag")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	def := Default()
	a := Build(def, Options{EnemySpeed: 60})
	a.Enemies[0].Box.X += 500
	a.Hazards[0].Box.Y -= 10
	a.Signs()[0].Discovered = true

	b := Build(def, Options{EnemySpeed: 60})
	c := Build(def, Options{EnemySpeed: 60})
	if !reflect.DeepEqual(b, c) {
		t.Error("two builds of the same definition differ")
	}
	if b.Enemies[0].Box.X == a.Enemies[0].Box.X || b.Hazards[0].Box.Y == a.Hazards[0].Box.Y || b.Signs()[0].Discovered {
		t.Error("mutating one build leaked into another")
	}
}

func TestBuildClampsNegativeSizes(t *testing.T) {
	def := Definition{
		ID:       "neg",
		Geometry: DefaultGeometry(),
		Stages: []StageDef{{
			Name:    "only",
			Length:  -100,
			Ledges:  []RectSpec{{X: 10, Elevation: 50, W: -5, H: 10}},
			Hazards: []RectSpec{{X: 10, W: 10, H: -1}},
			Enemies: []EnemySpec{{RectSpec: RectSpec{X: 10, W: 20, H: 20}, Patrol: -40}},
		}},
	}
	w := Build(def, Options{EnemySpeed: 60})

	if w.Stages[0].Length != 0 {
		t.Errorf("stage length = %v, expected 0", w.Stages[0].Length)
	}
	for _, s := range w.Solids {
		if s.Box.Empty() {
			t.Errorf("empty solid emitted: %+v", s)
		}
		if s.Kind == KindLedge {
			t.Error("zero-width ledge should not be emitted")
		}
	}
	if len(w.Hazards) != 0 {
		t.Errorf("hazards = %d, expected 0", len(w.Hazards))
	}
	if len(w.Enemies) != 1 || w.Enemies[0].Right != w.Enemies[0].Left {
		t.Errorf("negative patrol should clamp to a zero-width band: %+v", w.Enemies)
	}
}

func TestBuildDifficultyScaling(t *testing.T) {
	cfg := config.DefaultTuning().Difficulty
	cfg.Enabled = true
	w := Build(Default(), Options{EnemySpeed: 60, Difficulty: config.NewDifficultyManager(cfg)})

	// Projects is tier 2 of 3.
	want := 60 * (1 + 2.0/3.0)
	if math.Abs(w.Enemies[0].Speed-want) > 1e-9 {
		t.Errorf("scaled enemy speed = %v, expected %v", w.Enemies[0].Speed, want)
	}
	if w.Movers[0].Amplitude <= 40 {
		t.Errorf("scaled mover amplitude = %v, expected > 40", w.Movers[0].Amplitude)
	}
}
