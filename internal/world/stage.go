// Package world describes runner worlds as data and builds them into the
// entity collections the simulation operates on.
package world

import (
	"errors"
	"fmt"
)

var (
	// ErrStageGap is returned when a stage does not begin where the previous one ends.
	ErrStageGap = errors.New("world: stages are not contiguous")
	// ErrStageOverlap is returned when a stage begins before the previous one ends.
	ErrStageOverlap = errors.New("world: stages overlap")
	// ErrNoStages is returned for a definition without stages.
	ErrNoStages = errors.New("world: no stages")
)

// Stage is a named horizontal interval of the world.
type Stage struct {
	Name   string  `json:"name"`
	Start  float64 `json:"start"`
	Length float64 `json:"length"`
	Tier   int     `json:"tier"`
}

// End returns the exclusive end of the stage.
func (s Stage) End() float64 {
	return s.Start + s.Length
}

// Contains reports whether x lies inside [Start, End).
func (s Stage) Contains(x float64) bool {
	return x >= s.Start && x < s.End()
}

// Stages is an ordered stage list.
type Stages []Stage

// Validate checks that stages tile the world without gaps or overlaps.
func (ss Stages) Validate() error {
	if len(ss) == 0 {
		return ErrNoStages
	}
	for i := 1; i < len(ss); i++ {
		prev, cur := ss[i-1], ss[i]
		switch {
		case cur.Start > prev.End():
			return fmt.Errorf("%w: %q ends at %v, %q starts at %v", ErrStageGap, prev.Name, prev.End(), cur.Name, cur.Start)
		case cur.Start < prev.End():
			return fmt.Errorf("%w: %q ends at %v, %q starts at %v", ErrStageOverlap, prev.Name, prev.End(), cur.Name, cur.Start)
		}
	}
	return nil
}

// IndexAt returns the index of the highest stage whose start is at or before x.
// Positions before the first stage map to 0.
func (ss Stages) IndexAt(x float64) int {
	idx := 0
	for i, s := range ss {
		if s.Start <= x {
			idx = i
		}
	}
	return idx
}

// MaxTier returns the highest tier among the stages.
func (ss Stages) MaxTier() int {
	tier := 0
	for _, s := range ss {
		tier = max(tier, s.Tier)
	}
	return tier
}
