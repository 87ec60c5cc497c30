package config

import "github.com/vovakirdan/resume-run/internal/core"

// DifficultyManager derives per-stage parameters from the stage tier.
// A disabled manager leaves every parameter at its base value.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the difficulty level (0.0 to 1.0) for a stage tier.
// Progression interpolates from the initial level at tier 0 to 1.0 at maxTier.
func (d *DifficultyManager) Level(tier, maxTier int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if maxTier <= 0 {
		return d.initialLevel
	}
	progress := core.ClampF(float64(tier)/float64(maxTier), 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemySpeed returns the patrol speed for enemies in a stage of the given tier.
func (d *DifficultyManager) EnemySpeed(base float64, tier, maxTier int) float64 {
	return base * (1.0 + d.Level(tier, maxTier)*d.cfg.Scaling.EnemySpeedMultiplier)
}

// MoverAmplitude returns the oscillation amplitude for movers in a stage of the given tier.
func (d *DifficultyManager) MoverAmplitude(base float64, tier, maxTier int) float64 {
	return base * (1.0 + d.Level(tier, maxTier)*d.cfg.Scaling.MoverAmplitudeMultiplier)
}
