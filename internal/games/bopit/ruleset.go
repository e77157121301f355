package bopit

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/config"
)

// ruleset decides response limits, points and pacing.
type ruleset interface {
	// limit returns the response budget for a 1-based round.
	limit(round int) time.Duration
	// award returns the points for a correct answer with remaining budget left.
	award(remaining time.Duration) int
	// delay returns the pause before the command of the given round is issued.
	delay(round int) time.Duration
}

func newRuleset(cfg config.BopItConfig) (ruleset, error) {
	scale := cfg.LimitScale
	if scale <= 0 {
		scale = 1
	}
	switch cfg.Ruleset {
	case config.RulesetClassic, "":
		return classic{cfg: cfg.Classic, scale: scale, fixed: cfg.FixedLimit}, nil
	case config.RulesetDecay:
		return decay{cfg: cfg.Decay, scale: scale, fixed: cfg.FixedLimit}, nil
	default:
		return nil, fmt.Errorf("bopit: unknown ruleset %q", cfg.Ruleset)
	}
}

// classicLimits is the round-indexed response table: rounds up to the key
// get the value in milliseconds.
var classicLimits = []struct {
	maxRound int
	ms       int
}{
	{2, 3000},
	{4, 2500},
	{6, 2000},
	{8, 1500},
	{10, 1200},
	{12, 1000},
	{15, 800},
}

const classicFloorMs = 600

// classic scores one point plus a bonus per 100ms left and steps the limit
// down through a round table.
type classic struct {
	cfg   config.ClassicConfig
	scale float64
	fixed bool
}

func classicLimitMs(round int) int {
	for _, step := range classicLimits {
		if round <= step.maxRound {
			return step.ms
		}
	}
	return classicFloorMs
}

func (c classic) limit(round int) time.Duration {
	if c.fixed {
		round = 1
	}
	return scaleMs(float64(classicLimitMs(round)), c.scale)
}

func (c classic) award(remaining time.Duration) int {
	per := c.cfg.BonusPerMs
	if per <= 0 {
		per = 100
	}
	bonus := int(remaining.Milliseconds()) / per
	return 1 + max(0, bonus)
}

func (c classic) delay(round int) time.Duration {
	ms := max(c.cfg.MinDelayMs, c.cfg.BaseDelayMs-round*c.cfg.DelayStepMs)
	return time.Duration(ms) * time.Millisecond
}

// decay awards a flat amount and shrinks the limit geometrically per
// correct answer down to a floor. The next command follows immediately.
type decay struct {
	cfg   config.DecayConfig
	scale float64
	fixed bool
}

func (d decay) limit(round int) time.Duration {
	ms := float64(d.cfg.InitialLimitMs)
	if !d.fixed && round > 1 {
		ms *= math.Pow(d.cfg.Factor, float64(round-1))
	}
	ms = math.Max(ms, float64(d.cfg.FloorMs))
	return scaleMs(ms, d.scale)
}

func (d decay) award(time.Duration) int {
	return d.cfg.Points
}

func (d decay) delay(int) time.Duration {
	return 0
}

func scaleMs(ms, scale float64) time.Duration {
	return time.Duration(math.Round(ms*scale)) * time.Millisecond
}
