package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRampMultiplier(t *testing.T) {
	r := Ramp{Enabled: true, Interval: 30, Increment: 0.05, Max: 2.5}

	tests := []struct {
		name    string
		elapsed float64
		want    float64
		level   int
	}{
		{"start", 0, 1.0, 1},
		{"before first step", 29.9, 1.0, 1},
		{"after first step", 31, 1.05, 2},
		{"ten minutes", 600, 2.0, 21},
		{"capped", 10000, 2.5, 334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Multiplier(tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Multiplier(%v) = %v, expected %v", tt.elapsed, got, tt.want)
			}
			if got := r.Level(tt.elapsed); got != tt.level {
				t.Errorf("Level(%v) = %d, expected %d", tt.elapsed, got, tt.level)
			}
		})
	}

	r.Enabled = false
	if got := r.Multiplier(600); got != 1 {
		t.Errorf("disabled Multiplier() = %v, expected 1", got)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if p, err := ParsePreset(s); err != nil || string(p) != s {
			t.Errorf("ParsePreset(%q) = %q, %v", s, p, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestApplyDinoRunPreset(t *testing.T) {
	easy := DefaultDinoRunConfig()
	ApplyDinoRunPreset(&easy, DifficultyEasy)
	if easy.Dino.MaxStrikes != 5 || easy.Obstacles.BaseSpeed >= 300 {
		t.Errorf("easy preset = %d strikes, speed %v", easy.Dino.MaxStrikes, easy.Obstacles.BaseSpeed)
	}

	hard := DefaultDinoRunConfig()
	ApplyDinoRunPreset(&hard, DifficultyHard)
	if hard.Dino.MaxStrikes != 2 || hard.Obstacles.BaseSpeed <= 300 {
		t.Errorf("hard preset = %d strikes, speed %v", hard.Dino.MaxStrikes, hard.Obstacles.BaseSpeed)
	}

	fixed := DefaultDinoRunConfig()
	ApplyDinoRunPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Multiplier(300) != 1 || fixed.Spawner.SpeedRamp.Multiplier(300) != 1 {
		t.Error("fixed preset should disable both ramps")
	}

	normal := DefaultDinoRunConfig()
	ApplyDinoRunPreset(&normal, DifficultyNormal)
	if normal != DefaultDinoRunConfig() {
		t.Error("normal preset should keep the defaults")
	}
}

func TestApplyBopItPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		scale  float64
		fixed  bool
	}{
		{DifficultyEasy, 1.25, false},
		{DifficultyNormal, 1.0, false},
		{DifficultyHard, 0.8, false},
		{DifficultyFixed, 1.0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBopItConfig()
			ApplyBopItPreset(&cfg, tt.preset)
			if cfg.LimitScale != tt.scale || cfg.FixedLimit != tt.fixed {
				t.Errorf("preset %s = scale %v fixed %v", tt.preset, cfg.LimitScale, cfg.FixedLimit)
			}
		})
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var dino DinoRunConfig
	if err := yaml.Unmarshal(GetDefaultYAML("dino-run"), &dino); err != nil {
		t.Fatalf("parse embedded dino-run: %v", err)
	}
	if dino != DefaultDinoRunConfig() {
		t.Errorf("embedded dino-run config = %+v, expected %+v", dino, DefaultDinoRunConfig())
	}

	var bop BopItConfig
	if err := yaml.Unmarshal(GetDefaultYAML("bop-it"), &bop); err != nil {
		t.Fatalf("parse embedded bop-it: %v", err)
	}
	if bop != DefaultBopItConfig() {
		t.Errorf("embedded bop-it config = %+v, expected %+v", bop, DefaultBopItConfig())
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dino.yaml")
	if err := os.WriteFile(path, []byte("dino:\n  max_strikes: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDinoRun(path)
	if err != nil {
		t.Fatalf("LoadDinoRun() error = %v", err)
	}
	if cfg.Dino.MaxStrikes != 7 {
		t.Errorf("MaxStrikes = %d, expected 7", cfg.Dino.MaxStrikes)
	}
	if cfg.Dino.JumpPower != 450 || cfg.Obstacles.SpawnX != 850 {
		t.Error("keys missing from the file should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDinoRun(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("dino: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDinoRun(bad)
	if err == nil {
		t.Error("malformed config should fail")
	}
	if cfg != DefaultDinoRunConfig() {
		t.Error("malformed config should return defaults")
	}

	ruleset := filepath.Join(dir, "bopit.yaml")
	if err := os.WriteFile(ruleset, []byte("ruleset: chaos\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBopIt(ruleset); err == nil {
		t.Error("unknown ruleset should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := LoadBopIt("")
	if err != nil || cfg != DefaultBopItConfig() {
		t.Fatalf("LoadBopIt() without files = %+v, %v", cfg, err)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "bopit.yaml"), []byte("ruleset: decay\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBopIt("")
	if cfg.Ruleset != RulesetDecay {
		t.Errorf("local config Ruleset = %q, expected decay", cfg.Ruleset)
	}

	userDir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "bopit.yaml"), []byte("tick_ms: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBopIt("")
	if cfg.TickMs != 25 || cfg.Ruleset != RulesetClassic {
		t.Errorf("user config should win over local config, got %+v", cfg)
	}
}
