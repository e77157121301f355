package dinorun

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/reflex-arcade/internal/config"
)

// Weights is a probability per obstacle kind, in kind order.
type Weights [kindCount]float64

// Sum returns the total probability mass.
func (w Weights) Sum() float64 {
	var sum float64
	for _, p := range w {
		sum += p
	}
	return sum
}

// initialWeights is the level-1 table.
var initialWeights = Weights{0.4, 0.3, 0.2, 0.07, 0.03}

// WeightsForLevel returns the kind table for a difficulty level. Levels above
// 1 shift probability toward birds and double cacti, each weight capped. The
// table is not renormalized: the cumulative draw falls back to the first
// kind when the sum drifts below 1.
func WeightsForLevel(level int) Weights {
	if level <= 1 {
		return initialWeights
	}
	l := float64(level)
	birdInc := math.Min(l*0.02, 0.15)
	return Weights{
		CactusSmall:  math.Max(0.4-birdInc, 0.2),
		CactusLarge:  0.3,
		CactusDouble: math.Min(0.2+l*0.01, 0.3),
		BirdLow:      math.Min(0.07+birdInc*0.6, 0.15),
		BirdHigh:     math.Min(0.03+birdInc*0.4, 0.1),
	}
}

// Spawner emits obstacles at randomized intervals that shrink, and with kind
// weights that shift, as game time grows.
type Spawner struct {
	cfg       config.SpawnerConfig
	obstacles config.ObstaclesConfig
	groundY   float64
	rng       *rand.Rand

	sinceSpawn   float64
	nextInterval float64
	speed        float64
	level        int
	weights      Weights
}

// NewSpawner creates a spawner for cfg drawing from rng.
func NewSpawner(cfg config.DinoRunConfig, rng *rand.Rand) *Spawner {
	s := &Spawner{
		cfg:       cfg.Spawner,
		obstacles: cfg.Obstacles,
		groundY:   cfg.Dino.GroundY,
		rng:       rng,
	}
	s.Reset()
	return s
}

// Reset returns the spawner to level 1 with a fresh spawn interval.
func (s *Spawner) Reset() {
	s.sinceSpawn = 0
	s.speed = 1
	s.level = 1
	s.weights = initialWeights
	s.nextInterval = s.randomInterval()
}

// Level returns the current difficulty level, starting at 1.
func (s *Spawner) Level() int {
	return s.level
}

// Speed returns the spawn-rate multiplier.
func (s *Spawner) Speed() float64 {
	return s.speed
}

// Weights returns the current kind table.
func (s *Spawner) Weights() Weights {
	return s.weights
}

// NextInterval returns the seconds between the previous spawn and the next.
func (s *Spawner) NextInterval() float64 {
	return s.nextInterval
}

// Update advances the spawn timer by dt at total game time gameTime and
// returns a new obstacle when one is due, or nil.
func (s *Spawner) Update(dt, gameTime float64) *Obstacle {
	s.sinceSpawn += dt
	s.updateDifficulty(gameTime)

	if s.sinceSpawn < s.nextInterval {
		return nil
	}
	return s.Spawn()
}

// Spawn creates an obstacle now and restarts the timer.
func (s *Spawner) Spawn() *Obstacle {
	kind := s.chooseKind()
	o := NewObstacle(kind, s.obstacles.SpawnX, s.spawnY(kind), s.obstacles, s.speed)

	s.sinceSpawn = 0
	s.nextInterval = s.randomInterval()
	return o
}

func (s *Spawner) spawnY(kind ObstacleKind) float64 {
	switch kind {
	case BirdHigh:
		return s.obstacles.BirdHighY
	case BirdLow:
		return s.obstacles.BirdLowY
	default:
		_, h := kind.Size()
		return s.groundY - h
	}
}

// chooseKind draws a kind by cumulative sum in table order.
func (s *Spawner) chooseKind() ObstacleKind {
	r := s.rng.Float64()
	var cumulative float64
	for k, p := range s.weights {
		cumulative += p
		if r <= cumulative {
			return ObstacleKind(k)
		}
	}
	return CactusSmall
}

// randomInterval draws uniformly from [min, max] / speed.
func (s *Spawner) randomInterval() float64 {
	lo := s.cfg.MinInterval / s.speed
	hi := s.cfg.MaxInterval / s.speed
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Spawner) updateDifficulty(gameTime float64) {
	level := s.cfg.SpeedRamp.Level(gameTime)
	if level <= s.level {
		return
	}
	s.level = level
	s.speed = s.cfg.SpeedRamp.Multiplier(gameTime)
	s.weights = WeightsForLevel(level)
}
