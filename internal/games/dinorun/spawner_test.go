package dinorun

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/reflex-arcade/internal/config"
)

func TestWeightsForLevel(t *testing.T) {
	if WeightsForLevel(1) != initialWeights {
		t.Error("level 1 should use the initial table")
	}
	if math.Abs(initialWeights.Sum()-1) > 1e-9 {
		t.Errorf("initial table sums to %v", initialWeights.Sum())
	}

	prev := WeightsForLevel(1)
	for level := 2; level <= 40; level++ {
		w := WeightsForLevel(level)
		if sum := w.Sum(); sum < 0.99 || sum > 1.1 {
			t.Errorf("level %d table sums to %v", level, sum)
		}
		if w[BirdLow] > 0.15 || w[BirdHigh] > 0.1 || w[CactusDouble] > 0.3 || w[CactusSmall] < 0.2 {
			t.Errorf("level %d table breaks a cap: %v", level, w)
		}
		if w[BirdLow] < prev[BirdLow] || w[CactusDouble] < prev[CactusDouble] {
			t.Errorf("level %d should not favor birds or double cacti less than level %d", level, level-1)
		}
		prev = w
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	cfg := config.DefaultDinoRunConfig()
	a := NewSpawner(cfg, rand.New(rand.NewSource(42)))
	b := NewSpawner(cfg, rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		if a.NextInterval() != b.NextInterval() {
			t.Fatalf("spawn %d: intervals differ", i)
		}
		if a.Spawn().Kind != b.Spawn().Kind {
			t.Fatalf("spawn %d: kinds differ", i)
		}
	}
}

func TestSpawnerIntervalAndTiming(t *testing.T) {
	cfg := config.DefaultDinoRunConfig()
	s := NewSpawner(cfg, rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		iv := s.NextInterval()
		if iv < 1.5 || iv > 3.0 {
			t.Fatalf("interval %v outside [1.5, 3.0]", iv)
		}
		s.Spawn()
	}

	iv := s.NextInterval()
	if o := s.Update(iv-0.01, 1); o != nil {
		t.Error("no obstacle before the interval elapses")
	}
	if o := s.Update(0.02, 1); o == nil {
		t.Error("an obstacle is due once the interval elapses")
	}
}

func TestSpawnerLevelUp(t *testing.T) {
	cfg := config.DefaultDinoRunConfig()
	s := NewSpawner(cfg, rand.New(rand.NewSource(3)))

	s.Update(0, 31)
	if s.Level() != 2 || math.Abs(s.Speed()-1.1) > 1e-9 {
		t.Errorf("after 31s level=%d speed=%v, expected 2 and 1.1", s.Level(), s.Speed())
	}
	if s.Weights() != WeightsForLevel(2) {
		t.Error("level up should re-weight the kind table")
	}

	s.Spawn()
	if iv := s.NextInterval(); iv < 1.5/1.1-1e-9 || iv > 3.0/1.1+1e-9 {
		t.Errorf("interval %v outside [1.5, 3.0]/1.1", iv)
	}

	s.Update(0, 10000)
	if s.Speed() != 2.0 {
		t.Errorf("Speed() = %v, expected cap 2.0", s.Speed())
	}

	s.Reset()
	if s.Level() != 1 || s.Speed() != 1 || s.Weights() != initialWeights {
		t.Error("Reset() should return to level 1")
	}
}

func TestSpawnerPositions(t *testing.T) {
	cfg := config.DefaultDinoRunConfig()
	s := NewSpawner(cfg, rand.New(rand.NewSource(1)))

	seen := map[ObstacleKind]bool{}
	for i := 0; i < 500 && len(seen) < kindCount; i++ {
		o := s.Spawn()
		seen[o.Kind] = true
		e := o.Entity

		if e.Pos.X != 850 {
			t.Fatalf("%v spawned at x=%v", o.Kind, e.Pos.X)
		}
		switch o.Kind {
		case BirdLow:
			if e.Pos.Y != 380 {
				t.Errorf("low bird at y=%v", e.Pos.Y)
			}
		case BirdHigh:
			if e.Pos.Y != 320 {
				t.Errorf("high bird at y=%v", e.Pos.Y)
			}
		default:
			if e.Pos.Y+e.H != 460 {
				t.Errorf("%v bottom at %v, expected the ground line", o.Kind, e.Pos.Y+e.H)
			}
		}
	}
	if len(seen) != kindCount {
		t.Errorf("only saw kinds %v in 500 spawns", seen)
	}
}

func TestChooseKindFallback(t *testing.T) {
	s := NewSpawner(config.DefaultDinoRunConfig(), rand.New(rand.NewSource(1)))
	s.weights = Weights{}

	for i := 0; i < 10; i++ {
		if k := s.chooseKind(); k != CactusSmall {
			t.Errorf("chooseKind() with an empty table = %v, expected cactus_small", k)
		}
	}
}
