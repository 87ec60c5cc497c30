package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: PhysicsConfig{
			Gravity:          2000,
			MoveSpeed:        300,
			Accel:            2400,
			Friction:         900,
			StopSpeed:        1,
			JumpVelocity:     -600,
			TerminalVelocity: 1200,
		},
		Player: PlayerConfig{
			Width:  28,
			Height: 40,
		},
		Rules: RulesConfig{
			EnemySpeed:       60,
			MoverRate:        1.2,
			StompMinVY:       100,
			StompTolerance:   22,
			BounceFactor:     0.7,
			RespawnPenalty:   1.2,
			CheckpointOffset: 40,
			InteractRange:    40,
			CameraLead:       0.35,
			NoticeTTL:        1.6,
		},
		Driver: DriverConfig{
			MaxStep:    30 * time.Millisecond,
			HoldWindow: 250 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				EnemySpeedMultiplier:     1.0,
				MoverAmplitudeMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default tuning YAML.
func GetDefaultYAML() []byte {
	return defaultTuningYAML
}
