package sim

import (
	"math"

	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/world"
)

// Visual tags a sprite for renderers.
type Visual string

const (
	VisualGround Visual = "ground"
	VisualLedge  Visual = "ledge"
	VisualMover  Visual = "mover"
	VisualEnemy  Visual = "enemy"
	VisualHazard Visual = "hazard"
	VisualSign   Visual = "sign"
	VisualFinish Visual = "finish"
)

// Sprite is one drawable entity.
type Sprite struct {
	Kind  Visual   `json:"kind"`
	Box   core.Box `json:"box"`
	Label string   `json:"label,omitempty"`
	Seen  bool     `json:"seen,omitempty"`
}

// StageInfo describes the stage the player is in.
type StageInfo struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Name  string `json:"name"`
}

// Viewport is the visible area in world units.
type Viewport struct {
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	FloorY float64 `json:"floor_y"`
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase       Phase     `json:"phase"`
	Finished    bool      `json:"finished"`
	Tick        uint64    `json:"tick"`
	Elapsed     float64   `json:"elapsed"`
	Camera      float64   `json:"camera"`
	WorldLength float64   `json:"world_length"`
	Viewport    Viewport  `json:"viewport"`
	Player      Player    `json:"player"`
	Sprites     []Sprite  `json:"sprites"`
	Stage       StageInfo `json:"stage"`
	CanInteract bool      `json:"can_interact"`
	NearLabel   string    `json:"near_label,omitempty"`
	Notice      string    `json:"notice,omitempty"`
	Checkpoint  float64   `json:"checkpoint"`
	Respawns    int       `json:"respawns"`
	Stomps      int       `json:"stomps"`
	Discovered  int       `json:"discovered"`
	SignCount   int       `json:"sign_count"`
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	g := w.Geometry

	snap := Snapshot{
		Phase:       s.phase,
		Finished:    s.finished,
		Tick:        s.tick,
		Elapsed:     s.elapsed,
		Camera:      s.camera(),
		WorldLength: w.Length,
		Viewport:    Viewport{W: g.ViewportW, H: g.ViewportH, FloorY: g.FloorY()},
		Player:      s.player,
		CanInteract: s.nearSign != nil,
		Checkpoint:  s.checkpoint,
		Respawns:    s.respawns,
		Stomps:      s.stomps,
	}
	if s.nearSign != nil {
		snap.NearLabel = s.nearSign.Label
	}
	if s.notice.TTL > 0 {
		snap.Notice = s.notice.Text
	}
	if len(w.Stages) > 0 {
		idx := w.Stages.IndexAt(s.player.Box.X)
		snap.Stage = StageInfo{Index: idx, Count: len(w.Stages), Name: w.Stages[idx].Name}
	}

	sprites := make([]Sprite, 0, len(w.Solids)+len(w.Movers)+len(w.Hazards)+len(w.Enemies)+len(w.Interactors))
	for _, solid := range w.Solids {
		kind := VisualGround
		if solid.Kind == world.KindLedge {
			kind = VisualLedge
		}
		sprites = append(sprites, Sprite{Kind: kind, Box: solid.Box})
	}
	for _, m := range w.Movers {
		sprites = append(sprites, Sprite{Kind: VisualMover, Box: m.Box})
	}
	for _, h := range w.Hazards {
		sprites = append(sprites, Sprite{Kind: VisualHazard, Box: h.Box})
	}
	for _, e := range w.Enemies {
		sprites = append(sprites, Sprite{Kind: VisualEnemy, Box: e.Box})
	}
	for _, sign := range w.Signs() {
		snap.SignCount++
		if sign.Discovered {
			snap.Discovered++
		}
		sprites = append(sprites, Sprite{Kind: VisualSign, Box: sign.Box, Label: sign.Label, Seen: sign.Discovered})
	}
	if gate := w.Gate(); gate != nil {
		sprites = append(sprites, Sprite{Kind: VisualFinish, Box: gate.Box})
	}
	snap.Sprites = sprites
	return snap
}

// camera returns the horizontal scroll offset, keeping the player a fixed
// fraction into the viewport and never showing past either world edge.
func (s *Simulation) camera() float64 {
	g := s.world.Geometry
	limit := math.Max(0, s.world.Length-g.ViewportW)
	return core.ClampF(s.player.Box.X-g.ViewportW*s.tune.Rules.CameraLead, 0, limit)
}

// Hash returns a hash of the snapshot for determinism testing.
func (sn Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}
	mixBox := func(b core.Box) {
		mixF(b.X)
		mixF(b.Y)
		mixF(b.W)
		mixF(b.H)
	}

	mix(uint64(sn.Phase))
	mix(sn.Tick)
	mixF(sn.Elapsed)
	mixF(sn.Camera)
	mixBox(sn.Player.Box)
	mixF(sn.Player.VX)
	mixF(sn.Player.VY)
	if sn.Player.OnGround {
		mix(1)
	}
	mixF(sn.Checkpoint)
	mix(uint64(sn.Respawns))
	mix(uint64(sn.Stomps))
	mix(uint64(sn.Discovered))
	for _, sp := range sn.Sprites {
		for _, r := range sp.Kind {
			mix(uint64(r))
		}
		mixBox(sp.Box)
	}
	return h
}
