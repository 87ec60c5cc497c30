package sim

// updateCheckpoint advances the checkpoint to the furthest stage reached.
// It never moves backward.
func (s *Simulation) updateCheckpoint() {
	stages := s.world.Stages
	if len(stages) == 0 {
		return
	}
	start := stages[stages.IndexAt(s.player.Box.X)].Start
	s.checkpoint = max(s.checkpoint, start+s.tune.Rules.CheckpointOffset)
}

// respawn penalizes the run and returns the player to the checkpoint.
func (s *Simulation) respawn(reason string) {
	p := &s.player
	s.elapsed += s.tune.Rules.RespawnPenalty
	p.Box.X = s.checkpoint
	p.Box.Y = s.world.Geometry.FloorY() - p.Box.H
	p.VX = 0
	p.VY = 0
	p.OnGround = false
	s.respawns++
	s.respawned = true
	s.setNotice(reason)
	s.emit(EventRespawn{Reason: reason})
}

// CurrentStage returns the index of the stage containing x.
func (s *Simulation) CurrentStage(x float64) int {
	return s.world.Stages.IndexAt(x)
}
