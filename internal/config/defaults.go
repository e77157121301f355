package config

import (
	_ "embed"
)

//go:embed defaults/dinorun.yaml
var defaultDinoRunYAML []byte

//go:embed defaults/bopit.yaml
var defaultBopItYAML []byte

// DefaultDinoRunConfig returns the default Dino-Run configuration.
func DefaultDinoRunConfig() DinoRunConfig {
	return DinoRunConfig{
		Physics: PhysicsConfig{
			Gravity:          800,
			TerminalVelocity: 600,
			AirResistance:    0.98,
			GroundTolerance:  5,
			Restitution:      0.7,
		},
		Dino: DinoConfig{
			X:               100,
			Width:           50,
			Height:          60,
			GroundY:         460,
			JumpPower:       450,
			MaxStrikes:      3,
			Invulnerability: 1.5,
			CollisionMargin: 5,
			FrameDuration:   0.15,
		},
		Obstacles: ObstaclesConfig{
			SpawnX:          850,
			BaseSpeed:       300,
			CollisionMargin: 3,
			BirdLowY:        380,
			BirdHighY:       320,
			DespawnX:        -50,
			FlapInterval:    0.2,
		},
		Spawner: SpawnerConfig{
			MinInterval: 1.5,
			MaxInterval: 3.0,
			SpeedRamp: Ramp{
				Enabled:   true,
				Interval:  30,
				Increment: 0.1,
				Max:       2.0,
			},
		},
		Scroll: ScrollConfig{
			GroundSpeed: 200,
			Clouds:      5,
			Mountains:   8,
		},
		Difficulty: Ramp{
			Enabled:   true,
			Interval:  30,
			Increment: 0.05,
			Max:       2.5,
		},
	}
}

// DefaultBopItConfig returns the default Bop-It configuration.
func DefaultBopItConfig() BopItConfig {
	return BopItConfig{
		Ruleset:    RulesetClassic,
		LimitScale: 1.0,
		TickMs:     50,
		Classic: ClassicConfig{
			BaseDelayMs: 1000,
			DelayStepMs: 50,
			MinDelayMs:  300,
			BonusPerMs:  100,
		},
		Decay: DecayConfig{
			InitialLimitMs: 3000,
			Factor:         0.95,
			FloorMs:        600,
			Points:         10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "dino-run":
		return defaultDinoRunYAML
	case "bop-it":
		return defaultBopItYAML
	default:
		return nil
	}
}
