// Package sim implements the runner simulation: kinematics, entity behavior,
// checkpoints, the phase state machine and the frame driver. It has no
// dependency on any front end; renderers read Snapshots and submit intents
// through InputFrames.
package sim

import (
	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/world"
)

// Player is the single controllable entity.
type Player struct {
	Box      core.Box `json:"box"`
	VX       float64  `json:"vx"`
	VY       float64  `json:"vy"`
	OnGround bool     `json:"on_ground"`
	Facing   float64  `json:"facing"`
}

// Notice is a transient message shown to the player.
type Notice struct {
	Text string
	TTL  float64
}

// StepResult is returned by Step.
type StepResult struct {
	Phase  Phase
	Events []Event
}

// Completion summarizes a run.
type Completion struct {
	Elapsed    float64
	Stages     int
	Respawns   int
	Stomps     int
	Discovered int
	Signs      int
}

// Simulation owns all mutable run state. It is not safe for concurrent use;
// a single goroutine drives it and front ends read Snapshots.
type Simulation struct {
	def        world.Definition
	pending    *world.Definition
	tune       config.Tuning
	difficulty *config.DifficultyManager

	world      *world.World
	player     Player
	checkpoint float64
	phase      Phase
	finished   bool
	elapsed    float64
	tick       uint64

	respawns int
	stomps   int
	nearSign *world.Sign
	notice   Notice

	events    []Event
	respawned bool
}

// New creates a simulation in the menu phase with the world built.
func New(def world.Definition, tune config.Tuning) *Simulation {
	s := &Simulation{
		def:        def,
		tune:       tune,
		difficulty: config.NewDifficultyManager(tune.Difficulty),
	}
	s.reset()
	return s
}

// reset discards the previous run and rebuilds the world.
func (s *Simulation) reset() {
	if s.pending != nil {
		s.def = *s.pending
		s.pending = nil
	}
	s.world = world.Build(s.def, world.Options{
		EnemySpeed: s.tune.Rules.EnemySpeed,
		Difficulty: s.difficulty,
	})

	g := s.world.Geometry
	s.player = Player{
		Box:    core.NewBox(g.SpawnX, g.FloorY()-s.tune.Player.Height, s.tune.Player.Width, s.tune.Player.Height),
		Facing: 1,
	}
	s.checkpoint = g.SpawnX
	s.finished = false
	s.elapsed = 0
	s.tick = 0
	s.respawns = 0
	s.stomps = 0
	s.nearSign = nil
	s.notice = Notice{}
	s.events = nil
}

// SetDefinition replaces the world definition. It applies immediately in the
// menu and otherwise on the next Restart.
func (s *Simulation) SetDefinition(def world.Definition) {
	if s.phase == PhaseMenu {
		s.def = def
		s.pending = nil
		s.reset()
		return
	}
	s.pending = &def
}

// Definition returns the definition of the current run.
func (s *Simulation) Definition() world.Definition {
	return s.def
}

// Step consumes one frame of intents and advances by dt seconds if playing.
// A frame that applies a phase change does not also advance the world.
func (s *Simulation) Step(in core.InputFrame, dt float64) StepResult {
	s.events = nil

	transitioned := false
	switch {
	case in.Has(core.ActionConfirm) && s.phase == PhaseMenu:
		transitioned = s.Start() == nil
	case in.Has(core.ActionRestart) && (s.phase == PhasePaused || s.phase == PhaseFinished):
		transitioned = s.Restart() == nil
	case in.Has(core.ActionPause):
		transitioned = s.TogglePause() == nil
	}

	if s.phase == PhasePlaying && !transitioned {
		if in.Has(core.ActionInteract) {
			s.Interact()
		}
		s.advance(in, dt)
	}

	return StepResult{Phase: s.phase, Events: s.events}
}

// advance runs one physics and behavior pass.
func (s *Simulation) advance(in core.InputFrame, dt float64) {
	s.respawned = false
	s.tick++
	s.elapsed += dt
	if s.notice.TTL > 0 {
		s.notice.TTL = max(0, s.notice.TTL-dt)
	}

	s.integrate(in, dt)
	s.updateEnemies(dt)
	s.checkHazards()
	if s.checkPit() {
		s.updateProximity()
		return
	}
	s.updateCheckpoint()
	s.updateProximity()
	s.checkFinish()
}

// Interact opens the sign in range, if any. It reports the opened label.
func (s *Simulation) Interact() (string, bool) {
	if s.phase != PhasePlaying || s.nearSign == nil {
		return "", false
	}
	s.nearSign.Discovered = true
	s.emit(EventContent{Label: s.nearSign.Label})
	return s.nearSign.Label, true
}

func (s *Simulation) emit(e Event) {
	s.events = append(s.events, e)
}

// Player returns a copy of the player.
func (s *Simulation) Player() Player {
	return s.player
}

// Elapsed returns simulated seconds including respawn penalties.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Checkpoint returns the current respawn x.
func (s *Simulation) Checkpoint() float64 {
	return s.checkpoint
}

// World returns the live world. Callers must not mutate it.
func (s *Simulation) World() *world.World {
	return s.world
}

// Tuning returns the tuning in use.
func (s *Simulation) Tuning() config.Tuning {
	return s.tune
}

// Completion returns the run summary. Stages is the total stage count.
func (s *Simulation) Completion() Completion {
	c := Completion{
		Elapsed:  s.elapsed,
		Stages:   len(s.world.Stages),
		Respawns: s.respawns,
		Stomps:   s.stomps,
	}
	for _, sign := range s.world.Signs() {
		c.Signs++
		if sign.Discovered {
			c.Discovered++
		}
	}
	return c
}
