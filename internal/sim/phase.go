package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a phase change is not allowed from
// the current phase. The simulation state is left unchanged.
var ErrInvalidTransition = errors.New("sim: invalid phase transition")

// Phase is the run's lifecycle state. Only PhasePlaying advances time.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func transitionError(from, to Phase) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Start begins the run from the menu.
func (s *Simulation) Start() error {
	if s.phase != PhaseMenu {
		return transitionError(s.phase, PhasePlaying)
	}
	s.phase = PhasePlaying
	return nil
}

// TogglePause switches between Playing and Paused.
// It is rejected once the run has finished.
func (s *Simulation) TogglePause() error {
	switch s.phase {
	case PhasePlaying:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhasePlaying
	default:
		return transitionError(s.phase, PhasePaused)
	}
	return nil
}

// Restart rebuilds the world from scratch and resumes play.
// Allowed from Paused and Finished.
func (s *Simulation) Restart() error {
	if s.phase != PhasePaused && s.phase != PhaseFinished {
		return transitionError(s.phase, PhasePlaying)
	}
	s.reset()
	s.phase = PhasePlaying
	return nil
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Finished reports whether the finish gate has been reached in this run.
func (s *Simulation) Finished() bool {
	return s.finished
}
