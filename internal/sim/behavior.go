package sim

import (
	"math"
	"slices"
)

// updateMovers advances every mover's oscillation, near or far.
func (s *Simulation) updateMovers(dt float64) {
	rate := s.tune.Rules.MoverRate
	for _, m := range s.world.Movers {
		m.T += dt
		m.Box.Y = m.BaseY + math.Sin(m.T*rate)*m.Amplitude
	}
}

// updateEnemies moves enemies along their patrol band and resolves contact
// with the player. A stomp needs a falling player whose bottom is within the
// tolerance of the enemy's top; any other contact respawns.
func (s *Simulation) updateEnemies(dt float64) {
	for _, e := range s.world.Enemies {
		e.Box.X += e.Dir * e.Speed * dt
		if e.Box.X < e.Left {
			e.Dir = 1
		} else if e.Box.X > e.Right {
			e.Dir = -1
		}
	}

	p := &s.player
	rules := s.tune.Rules
	for i, e := range s.world.Enemies {
		if !p.Box.Overlaps(e.Box) {
			continue
		}
		if p.VY > rules.StompMinVY && p.Box.Bottom() <= e.Box.Y+rules.StompTolerance {
			s.world.Enemies = slices.Delete(s.world.Enemies, i, i+1)
			p.VY = s.tune.Physics.JumpVelocity * rules.BounceFactor
			s.stomps++
			s.setNotice(NoticeStomp)
			s.emit(EventStomp{})
		} else {
			s.respawn(ReasonEnemy)
		}
		return
	}
}

// checkHazards respawns on the first hazard overlap. Skipped when the player
// already respawned this frame.
func (s *Simulation) checkHazards() {
	if s.respawned {
		return
	}
	for _, h := range s.world.Hazards {
		if s.player.Box.Overlaps(h.Box) {
			s.respawn(ReasonHazard)
			return
		}
	}
}

// checkPit respawns a player that fell below the world.
func (s *Simulation) checkPit() bool {
	if s.player.Box.Y > s.world.Geometry.FallLimit() {
		s.respawn(ReasonPit)
		return true
	}
	return false
}

// checkFinish moves the run to Finished the first time the player passes the
// finish line.
func (s *Simulation) checkFinish() {
	if s.finished {
		return
	}
	if s.player.Box.X > s.world.Length-s.world.Geometry.FinishMargin {
		s.finished = true
		s.phase = PhaseFinished
		s.emit(EventFinished{Elapsed: s.elapsed})
	}
}

// updateProximity recomputes the sign in interaction range.
func (s *Simulation) updateProximity() {
	s.nearSign = nil
	center := s.player.Box.CenterX()
	for _, sign := range s.world.Signs() {
		if math.Abs(sign.Box.CenterX()-center) < s.tune.Rules.InteractRange {
			s.nearSign = sign
			return
		}
	}
}

// CanInteract reports whether a sign is in range.
func (s *Simulation) CanInteract() bool {
	return s.nearSign != nil
}

func (s *Simulation) setNotice(text string) {
	s.notice = Notice{Text: text, TTL: s.tune.Rules.NoticeTTL}
}
