package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDinoRun loads Dino-Run configuration.
// Search order: customPath -> ~/.arcade/configs/dinorun.yaml -> ./configs/dinorun.yaml -> embedded default
func LoadDinoRun(customPath string) (DinoRunConfig, error) {
	return load(customPath, "dinorun.yaml", defaultDinoRunYAML, DefaultDinoRunConfig)
}

// LoadBopIt loads Bop-It configuration.
// Search order: customPath -> ~/.arcade/configs/bopit.yaml -> ./configs/bopit.yaml -> embedded default
func LoadBopIt(customPath string) (BopItConfig, error) {
	cfg, err := load(customPath, "bopit.yaml", defaultBopItYAML, DefaultBopItConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.Ruleset != RulesetClassic && cfg.Ruleset != RulesetDecay {
		return cfg, fmt.Errorf("config: unknown bop-it ruleset %q", cfg.Ruleset)
	}
	return cfg, nil
}

// load decodes the first config found over the hardcoded defaults, so a
// file only needs the keys it overrides.
func load[T any](customPath, filename string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := defaults()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
