package config

import "math"

// Ramp is a stepped multiplier that grows by Increment every Interval
// seconds until it reaches Max. A disabled ramp stays at 1.
type Ramp struct {
	Enabled   bool    `yaml:"enabled"`
	Interval  float64 `yaml:"interval"`  // Seconds per step
	Increment float64 `yaml:"increment"` // Added per step
	Max       float64 `yaml:"max"`
}

// Steps returns the number of whole intervals in elapsed seconds.
func (r Ramp) Steps(elapsed float64) int {
	if !r.Enabled || r.Interval <= 0 || elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed / r.Interval))
}

// Level returns the 1-based difficulty level at elapsed seconds.
func (r Ramp) Level(elapsed float64) int {
	return r.Steps(elapsed) + 1
}

// Multiplier returns the ramp value at elapsed seconds.
func (r Ramp) Multiplier(elapsed float64) float64 {
	m := 1 + float64(r.Steps(elapsed))*r.Increment
	if r.Max > 0 && m > r.Max {
		m = r.Max
	}
	return m
}
