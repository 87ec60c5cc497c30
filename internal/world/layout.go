package world

import (
	"fmt"

	"github.com/vovakirdan/resume-run/internal/core"
)

// Fixed sizes of interactable props.
const (
	SignWidth  = 20
	SignHeight = 40
	GateWidth  = 30
	GateHeight = 80
)

// Gap is a hole in a stage's ground. X is relative to the stage start.
type Gap struct {
	X float64 `yaml:"x" json:"x" jsonschema:"description=Offset from the stage start"`
	W float64 `yaml:"w" json:"w" jsonschema:"minimum=0"`
}

// RectSpec places a box relative to a stage start and the floor line.
// Elevation is the height of the box's top above the floor; zero rests the
// box on the floor.
type RectSpec struct {
	X         float64 `yaml:"x" json:"x"`
	Elevation float64 `yaml:"elevation,omitempty" json:"elevation,omitempty" jsonschema:"description=Height of the top edge above the floor; 0 rests on the floor"`
	W         float64 `yaml:"w" json:"w" jsonschema:"minimum=0"`
	H         float64 `yaml:"h" json:"h" jsonschema:"minimum=0"`
}

// Place resolves the spec to a box in world coordinates.
func (r RectSpec) Place(originX, floorY float64) core.Box {
	top := floorY - r.H
	if r.Elevation != 0 {
		top = floorY - r.Elevation
	}
	return core.NewBox(originX+r.X, top, r.W, r.H)
}

// MoverSpec is a platform oscillating vertically around its placed position.
type MoverSpec struct {
	RectSpec  `yaml:",inline"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude" jsonschema:"minimum=0"`
}

// EnemySpec is a patrolling enemy. It walks [X, X+Patrol] from its start.
type EnemySpec struct {
	RectSpec `yaml:",inline"`
	Patrol   float64 `yaml:"patrol" json:"patrol" jsonschema:"minimum=0"`
}

// SignSpec is a content sign standing on the floor.
type SignSpec struct {
	X     float64 `yaml:"x" json:"x"`
	Label string  `yaml:"label" json:"label" jsonschema:"description=Content panel opened by this sign"`
}

// StageDef is a stage together with its obstacle layout.
type StageDef struct {
	Name    string      `yaml:"name" json:"name"`
	Start   float64     `yaml:"start" json:"start"`
	Length  float64     `yaml:"length" json:"length" jsonschema:"minimum=0"`
	Tier    int         `yaml:"tier,omitempty" json:"tier,omitempty" jsonschema:"minimum=0"`
	Gaps    []Gap       `yaml:"gaps,omitempty" json:"gaps,omitempty"`
	Ledges  []RectSpec  `yaml:"ledges,omitempty" json:"ledges,omitempty"`
	Movers  []MoverSpec `yaml:"movers,omitempty" json:"movers,omitempty"`
	Enemies []EnemySpec `yaml:"enemies,omitempty" json:"enemies,omitempty"`
	Hazards []RectSpec  `yaml:"hazards,omitempty" json:"hazards,omitempty"`
	Signs   []SignSpec  `yaml:"signs,omitempty" json:"signs,omitempty"`
}

// Stage returns the stage interval, clamping a negative length to zero.
func (d StageDef) Stage() Stage {
	return Stage{Name: d.Name, Start: d.Start, Length: max(0, d.Length), Tier: d.Tier}
}

// Geometry holds viewport and world-edge measurements.
type Geometry struct {
	ViewportW      float64 `yaml:"viewport_w" json:"viewport_w"`
	ViewportH      float64 `yaml:"viewport_h" json:"viewport_h"`
	GroundHeight   float64 `yaml:"ground_height" json:"ground_height"`
	TrailingMargin float64 `yaml:"trailing_margin" json:"trailing_margin" jsonschema:"description=Distance past the last stage to the world end"`
	FinishMargin   float64 `yaml:"finish_margin" json:"finish_margin" jsonschema:"description=Player x beyond length minus this margin finishes the run"`
	FinishInset    float64 `yaml:"finish_inset" json:"finish_inset" jsonschema:"description=Distance of the finish gate from the world end"`
	SpawnX         float64 `yaml:"spawn_x" json:"spawn_x"`
}

// DefaultGeometry returns the 960x540 layout.
func DefaultGeometry() Geometry {
	return Geometry{
		ViewportW:      960,
		ViewportH:      540,
		GroundHeight:   64,
		TrailingMargin: 400,
		FinishMargin:   180,
		FinishInset:    160,
		SpawnX:         80,
	}
}

// FloorY returns the y of the ground's top surface.
func (g Geometry) FloorY() float64 {
	return g.ViewportH - g.GroundHeight
}

// FallLimit returns the y below which the player has fallen into a pit.
func (g Geometry) FallLimit() float64 {
	return g.ViewportH
}

// withDefaults fills zero viewport fields from DefaultGeometry.
func (g Geometry) withDefaults() Geometry {
	d := DefaultGeometry()
	if g.ViewportW <= 0 {
		g.ViewportW = d.ViewportW
	}
	if g.ViewportH <= 0 {
		g.ViewportH = d.ViewportH
	}
	if g.GroundHeight <= 0 {
		g.GroundHeight = d.GroundHeight
	}
	return g
}

// Definition is a complete, data-driven world layout.
type Definition struct {
	ID          string     `yaml:"id" json:"id" jsonschema:"pattern=^[a-z0-9-]+$"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Geometry    Geometry   `yaml:"geometry" json:"geometry"`
	Stages      []StageDef `yaml:"stages" json:"stages" jsonschema:"minItems=1"`
	Extras      []RectSpec `yaml:"extras,omitempty" json:"extras,omitempty" jsonschema:"description=Ground slabs anchored to the world end; x is relative to the world length"`
}

// StageList returns the stage intervals in order.
func (d Definition) StageList() Stages {
	out := make(Stages, len(d.Stages))
	for i, sd := range d.Stages {
		out[i] = sd.Stage()
	}
	return out
}

// Length returns the world length: the end of the last stage plus the trailing margin.
func (d Definition) Length() float64 {
	if len(d.Stages) == 0 {
		return max(0, d.Geometry.TrailingMargin)
	}
	return d.Stages[len(d.Stages)-1].Stage().End() + d.Geometry.TrailingMargin
}

// Validate checks the definition for structural errors.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("world: definition has no id")
	}
	if err := d.StageList().Validate(); err != nil {
		return fmt.Errorf("world %s: %w", d.ID, err)
	}
	return nil
}
