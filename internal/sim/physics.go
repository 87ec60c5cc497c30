package sim

import (
	"math"

	"github.com/vovakirdan/resume-run/internal/core"
)

// integrate applies intents, gravity and axis-separated collision resolution.
// A jump sets the launch velocity and the same frame's gravity still applies.
// Horizontal collisions only consider static solids; movers advance between
// the horizontal and vertical passes and take part in the vertical one.
func (s *Simulation) integrate(in core.InputFrame, dt float64) {
	p := &s.player
	ph := s.tune.Physics

	switch {
	case in.Has(core.ActionLeft):
		p.VX = approach(p.VX, -ph.MoveSpeed, ph.Accel*dt, ph.Accel)
		p.Facing = -1
	case in.Has(core.ActionRight):
		p.VX = approach(p.VX, ph.MoveSpeed, ph.Accel*dt, ph.Accel)
		p.Facing = 1
	default:
		p.VX = decay(p.VX, ph.Friction*dt, ph.StopSpeed)
	}

	if in.Has(core.ActionJump) && p.OnGround {
		p.VY = ph.JumpVelocity
		p.OnGround = false
		s.emit(EventJump{})
	}
	p.VY += ph.Gravity * dt
	p.VY = math.Min(p.VY, ph.TerminalVelocity)

	floor := s.world.Geometry.FloorY()

	p.Box.X += p.VX * dt
	if p.Box.Y <= floor {
		for _, solid := range s.world.Solids {
			if !p.Box.Overlaps(solid.Box) {
				continue
			}
			resolveX(p, solid.Box)
		}
	}

	s.updateMovers(dt)

	p.Box.Y += p.VY * dt
	p.OnGround = false
	if p.Box.Y > floor {
		return
	}
	for _, solid := range s.world.Solids {
		if p.Box.Overlaps(solid.Box) {
			resolveY(p, solid.Box)
		}
	}
	for _, m := range s.world.Movers {
		if p.Box.Overlaps(m.Box) {
			resolveY(p, m.Box)
		}
	}
}

// resolveX snaps the player to the near edge of b along x.
func resolveX(p *Player, b core.Box) {
	switch {
	case p.VX > 0:
		p.Box.X = b.X - p.Box.W
	case p.VX < 0:
		p.Box.X = b.Right()
	default:
		if p.Box.CenterX() < b.CenterX() {
			p.Box.X = b.X - p.Box.W
		} else {
			p.Box.X = b.Right()
		}
	}
	p.VX = 0
}

// resolveY snaps the player to the near edge of b along y. Only a downward
// resolution grounds the player.
func resolveY(p *Player, b core.Box) {
	if p.VY >= 0 {
		p.Box.Y = b.Y - p.Box.H
		p.OnGround = true
	} else {
		p.Box.Y = b.Bottom()
	}
	p.VY = 0
}

// approach moves v toward target by at most step. A non-positive rate
// sets the target directly.
func approach(v, target, step, rate float64) float64 {
	if rate <= 0 {
		return target
	}
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// decay reduces |v| by step without crossing zero and snaps tiny speeds to zero.
func decay(v, step, stop float64) float64 {
	if math.Abs(v) <= step {
		return 0
	}
	if v > 0 {
		v -= step
	} else {
		v += step
	}
	if math.Abs(v) < stop {
		return 0
	}
	return v
}
