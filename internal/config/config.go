// Package config provides YAML-based tuning loading and difficulty
// management for the runner.
package config

import "time"

// Tuning contains every numeric constant the simulation reads.
type Tuning struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Rules      RulesConfig      `yaml:"rules"`
	Driver     DriverConfig     `yaml:"driver"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines movement parameters in pixels and seconds.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`           // px/s^2, downward
	MoveSpeed        float64 `yaml:"move_speed"`        // px/s target while a direction is held
	Accel            float64 `yaml:"accel"`             // px/s^2 toward the target
	Friction         float64 `yaml:"friction"`          // px/s^2 decay once released
	StopSpeed        float64 `yaml:"stop_speed"`        // |vx| below this snaps to zero
	JumpVelocity     float64 `yaml:"jump_velocity"`     // negative is up
	TerminalVelocity float64 `yaml:"terminal_velocity"` // max downward speed
}

// PlayerConfig defines the player's hitbox.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RulesConfig defines entity behavior and scoring rules.
type RulesConfig struct {
	EnemySpeed       float64 `yaml:"enemy_speed"`
	MoverRate        float64 `yaml:"mover_rate"` // radians per second
	StompMinVY       float64 `yaml:"stomp_min_vy"`
	StompTolerance   float64 `yaml:"stomp_tolerance"`
	BounceFactor     float64 `yaml:"bounce_factor"`
	RespawnPenalty   float64 `yaml:"respawn_penalty"` // seconds
	CheckpointOffset float64 `yaml:"checkpoint_offset"`
	InteractRange    float64 `yaml:"interact_range"`
	CameraLead       float64 `yaml:"camera_lead"` // fraction of the viewport ahead of the player
	NoticeTTL        float64 `yaml:"notice_ttl"`  // seconds
}

// DriverConfig defines frame pacing.
type DriverConfig struct {
	MaxStep    time.Duration `yaml:"max_step"`
	HoldWindow time.Duration `yaml:"hold_window"`
}

// DifficultyConfig defines how stage tiers scale the world.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	EnemySpeedMultiplier     float64 `yaml:"enemy_speed_multiplier"`
	MoverAmplitudeMultiplier float64 `yaml:"mover_amplitude_multiplier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables tier progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the tuning based on a difficulty preset.
// An empty preset leaves the tuning untouched.
func ApplyPreset(t *Tuning, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		t.Difficulty.Enabled = false
	default:
		t.Difficulty.Enabled = true
		t.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
