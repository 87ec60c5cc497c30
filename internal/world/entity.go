package world

import "github.com/vovakirdan/resume-run/internal/core"

// SolidKind distinguishes static terrain.
type SolidKind int

const (
	KindGround SolidKind = iota
	KindLedge
)

// String returns the kind name used in snapshots.
func (k SolidKind) String() string {
	if k == KindLedge {
		return "ledge"
	}
	return "ground"
}

// Solid is static terrain.
type Solid struct {
	Box  core.Box
	Kind SolidKind
}

// Mover is a platform oscillating vertically: Y = BaseY + sin(T*rate)*Amplitude.
type Mover struct {
	Box       core.Box
	BaseY     float64
	Amplitude float64
	T         float64
}

// Enemy patrols horizontally within [Left, Right].
type Enemy struct {
	Box   core.Box
	Left  float64
	Right float64
	Dir   float64
	Speed float64
	Tier  int
}

// Hazard respawns the player on contact. It stays in place afterwards.
type Hazard struct {
	Box core.Box
}

// Interactor is a prop the player can approach. The set is closed:
// only *Sign and *FinishGate implement it.
type Interactor interface {
	Bounds() core.Box
	interactor()
}

// Sign opens a content panel when interacted with.
type Sign struct {
	Box        core.Box
	Label      string
	Stage      int
	Discovered bool
}

// Bounds returns the sign's box.
func (s *Sign) Bounds() core.Box { return s.Box }
func (*Sign) interactor()        {}

// FinishGate marks the end of the world.
type FinishGate struct {
	Box core.Box
}

// Bounds returns the gate's box.
func (g *FinishGate) Bounds() core.Box { return g.Box }
func (*FinishGate) interactor()        {}

// World is a built, mutable world instance owned by one simulation.
type World struct {
	ID          string
	Title       string
	Geometry    Geometry
	Stages      Stages
	Length      float64
	Solids      []Solid
	Movers      []*Mover
	Enemies     []*Enemy
	Hazards     []*Hazard
	Interactors []Interactor
}

// Signs returns the signs among the interactors in placement order.
func (w *World) Signs() []*Sign {
	var signs []*Sign
	for _, it := range w.Interactors {
		if s, ok := it.(*Sign); ok {
			signs = append(signs, s)
		}
	}
	return signs
}

// Gate returns the finish gate, or nil if the world has none.
func (w *World) Gate() *FinishGate {
	for _, it := range w.Interactors {
		if g, ok := it.(*FinishGate); ok {
			return g
		}
	}
	return nil
}
