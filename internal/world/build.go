package world

import (
	"sort"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/core"
)

// Options controls per-build parameters that are not part of the layout.
type Options struct {
	EnemySpeed float64
	// Difficulty scales enemies and movers by stage tier. Nil disables scaling.
	Difficulty *config.DifficultyManager
}

// Build turns a definition into a fresh world. It never shares containers
// with a previous build, so rebuilding from the same definition yields
// identical geometry.
func Build(def Definition, opts Options) *World {
	g := def.Geometry.withDefaults()
	floor := g.FloorY()
	stages := def.StageList()
	maxTier := stages.MaxTier()

	w := &World{
		ID:       def.ID,
		Title:    def.Title,
		Geometry: g,
		Stages:   stages,
		Length:   def.Length(),
	}

	for i, sd := range def.Stages {
		st := stages[i]
		origin := st.Start

		w.Solids = append(w.Solids, GroundWithGaps(st, sd.Gaps, floor, g.GroundHeight)...)

		for _, spec := range sd.Ledges {
			if box := spec.Place(origin, floor); !box.Empty() {
				w.Solids = append(w.Solids, Solid{Box: box, Kind: KindLedge})
			}
		}

		for _, spec := range sd.Movers {
			box := spec.Place(origin, floor)
			if box.Empty() {
				continue
			}
			amp := max(0, spec.Amplitude)
			if opts.Difficulty != nil {
				amp = opts.Difficulty.MoverAmplitude(amp, st.Tier, maxTier)
			}
			w.Movers = append(w.Movers, &Mover{Box: box, BaseY: box.Y, Amplitude: amp})
		}

		for _, spec := range sd.Enemies {
			box := spec.Place(origin, floor)
			if box.Empty() {
				continue
			}
			speed := opts.EnemySpeed
			if opts.Difficulty != nil {
				speed = opts.Difficulty.EnemySpeed(speed, st.Tier, maxTier)
			}
			w.Enemies = append(w.Enemies, &Enemy{
				Box:   box,
				Left:  box.X,
				Right: box.X + max(0, spec.Patrol),
				Dir:   1,
				Speed: speed,
				Tier:  st.Tier,
			})
		}

		for _, spec := range sd.Hazards {
			if box := spec.Place(origin, floor); !box.Empty() {
				w.Hazards = append(w.Hazards, &Hazard{Box: box})
			}
		}

		for _, spec := range sd.Signs {
			w.Interactors = append(w.Interactors, &Sign{
				Box:   core.NewBox(origin+spec.X, floor-SignHeight, SignWidth, SignHeight),
				Label: spec.Label,
				Stage: i,
			})
		}
	}

	for _, spec := range def.Extras {
		box := core.NewBox(w.Length+spec.X, floor-spec.Elevation, spec.W, spec.H)
		if spec.H == 0 {
			box.H = g.GroundHeight
		}
		if !box.Empty() {
			w.Solids = append(w.Solids, Solid{Box: box, Kind: KindGround})
		}
	}

	w.Interactors = append(w.Interactors, &FinishGate{
		Box: core.NewBox(w.Length-g.FinishInset, floor-GateHeight, GateWidth, GateHeight),
	})
	return w
}

// GroundWithGaps produces the ground solids of one stage. The returned spans
// and the gaps (clipped to the stage) tile [Start, End) exactly. Overlapping
// gaps merge and spans of non-positive width are never emitted.
func GroundWithGaps(stage Stage, gaps []Gap, floorY, groundH float64) []Solid {
	sorted := make([]Gap, len(gaps))
	copy(sorted, gaps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	end := stage.End()
	cursor := stage.Start
	var out []Solid

	emit := func(from, to float64) {
		to = min(to, end)
		if to-from > 0 && groundH > 0 {
			out = append(out, Solid{Box: core.NewBox(from, floorY, to-from, groundH), Kind: KindGround})
		}
	}

	for _, gap := range sorted {
		if gap.W <= 0 {
			continue
		}
		gapStart := stage.Start + gap.X
		gapEnd := gapStart + gap.W
		emit(cursor, gapStart)
		cursor = max(cursor, gapEnd)
	}
	emit(cursor, end)
	return out
}
