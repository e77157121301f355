// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade games.
package config

import "fmt"

// DinoRunConfig contains all configuration for the Dino-Run game.
type DinoRunConfig struct {
	Physics    PhysicsConfig   `yaml:"physics"`
	Dino       DinoConfig      `yaml:"dino"`
	Obstacles  ObstaclesConfig `yaml:"obstacles"`
	Spawner    SpawnerConfig   `yaml:"spawner"`
	Scroll     ScrollConfig    `yaml:"scroll"`
	Difficulty Ramp            `yaml:"difficulty"`
}

// PhysicsConfig mirrors the tunable constants of the physics package.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	AirResistance    float64 `yaml:"air_resistance"`
	GroundTolerance  float64 `yaml:"ground_tolerance"`
	Restitution      float64 `yaml:"restitution"`
}

// DinoConfig defines the player character.
type DinoConfig struct {
	X               float64 `yaml:"x"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GroundY         float64 `yaml:"ground_y"`         // Ground line the dino stands on
	JumpPower       float64 `yaml:"jump_power"`       // Upward speed of a jump
	MaxStrikes      int     `yaml:"max_strikes"`      // Hits before game over
	Invulnerability float64 `yaml:"invulnerability"`  // Seconds of immunity after a hit
	CollisionMargin float64 `yaml:"collision_margin"` // Hitbox inset
	FrameDuration   float64 `yaml:"frame_duration"`   // Seconds per animation frame
}

// ObstaclesConfig defines obstacle placement and motion.
type ObstaclesConfig struct {
	SpawnX          float64 `yaml:"spawn_x"`
	BaseSpeed       float64 `yaml:"base_speed"` // Leftward speed at multiplier 1
	CollisionMargin float64 `yaml:"collision_margin"`
	BirdLowY        float64 `yaml:"bird_low_y"`
	BirdHighY       float64 `yaml:"bird_high_y"`
	DespawnX        float64 `yaml:"despawn_x"` // Removed once the right edge passes this
	FlapInterval    float64 `yaml:"flap_interval"`
}

// SpawnerConfig defines the obstacle spawn schedule.
type SpawnerConfig struct {
	MinInterval float64 `yaml:"min_interval"` // Seconds, before speed scaling
	MaxInterval float64 `yaml:"max_interval"`
	SpeedRamp   Ramp    `yaml:"speed_ramp"` // Spawn rate multiplier over time
}

// ScrollConfig defines world scrolling.
type ScrollConfig struct {
	GroundSpeed float64 `yaml:"ground_speed"` // Pixels per second at multiplier 1
	Clouds      int     `yaml:"clouds"`
	Mountains   int     `yaml:"mountains"`
}

// BopItConfig contains all configuration for the Bop-It game.
type BopItConfig struct {
	Ruleset    string        `yaml:"ruleset"` // "classic" or "decay"
	LimitScale float64       `yaml:"limit_scale"`
	FixedLimit bool          `yaml:"fixed_limit"` // Keep the first round's limit forever
	TickMs     int           `yaml:"tick_ms"`     // Timer tick period
	Classic    ClassicConfig `yaml:"classic"`
	Decay      DecayConfig   `yaml:"decay"`
}

// ClassicConfig defines the round-based ruleset.
type ClassicConfig struct {
	BaseDelayMs int `yaml:"base_delay_ms"` // Pause before the next command
	DelayStepMs int `yaml:"delay_step_ms"` // Pause reduction per round
	MinDelayMs  int `yaml:"min_delay_ms"`
	BonusPerMs  int `yaml:"bonus_per_ms"` // Milliseconds of spare time per bonus point
}

// DecayConfig defines the multiplicative ruleset.
type DecayConfig struct {
	InitialLimitMs int     `yaml:"initial_limit_ms"`
	Factor         float64 `yaml:"factor"`
	FloorMs        int     `yaml:"floor_ms"`
	Points         int     `yaml:"points"`
}

// Ruleset names.
const (
	RulesetClassic = "classic"
	RulesetDecay   = "decay"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. The empty string means
// "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyDinoRunPreset modifies the config based on a difficulty preset.
func ApplyDinoRunPreset(cfg *DinoRunConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Dino.MaxStrikes = 5
		cfg.Obstacles.BaseSpeed *= 0.8
	case DifficultyHard:
		cfg.Dino.MaxStrikes = 2
		cfg.Obstacles.BaseSpeed *= 1.25
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Spawner.SpeedRamp.Enabled = false
	}
}

// ApplyBopItPreset modifies the config based on a difficulty preset.
func ApplyBopItPreset(cfg *BopItConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.LimitScale = 1.25
	case DifficultyHard:
		cfg.LimitScale = 0.8
	case DifficultyFixed:
		cfg.FixedLimit = true
	}
}
