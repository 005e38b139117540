// Package config loads g2pdict settings from a YAML file and G2PDICT_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/ieee0824/g2pdict/g2p"
)

// DefaultPath is read when no path is given and G2PDICT_CONFIG is unset.
const DefaultPath = "./g2pdict.yaml"

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Generate GenerateConfig `yaml:"generate"`
	Review   ReviewConfig   `yaml:"review"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"G2PDICT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"G2PDICT_LOG_FORMAT" env-default:"text"`
}

// GenerateConfig holds settings of the generate command.
type GenerateConfig struct {
	Workers int `yaml:"workers" env:"G2PDICT_WORKERS" env-default:"4"`
	// ProperNouns extends the built-in proper-noun table.
	ProperNouns map[string]string `yaml:"proper_nouns,omitempty"`
	// SingleChars extends the built-in one-letter table.
	SingleChars map[string]string `yaml:"single_chars,omitempty"`
}

// ReviewConfig holds the review queue location.
type ReviewConfig struct {
	DB     string `yaml:"db"     env:"G2PDICT_REVIEW_DB"     env-default:"g2pdict-review.db"`
	Record bool   `yaml:"record" env:"G2PDICT_REVIEW_RECORD" env-default:"false"`
}

// MetricsConfig holds the textfile collector output.
type MetricsConfig struct {
	File string `yaml:"file" env:"G2PDICT_METRICS_FILE"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Generate: GenerateConfig{Workers: 4},
		Review:   ReviewConfig{DB: "g2pdict-review.db"},
	}
}

// Load reads configuration. Priority: ENV > YAML > defaults.
// The file is path, else G2PDICT_CONFIG, else DefaultPath. A missing file
// is an error only when it was named explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("G2PDICT_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	if c.Generate.Workers < 1 {
		return fmt.Errorf("generate.workers must be >= 1 (got %d)", c.Generate.Workers)
	}
	if w, other, ok := collision(c.Generate.ProperNouns); ok {
		return fmt.Errorf("generate.proper_nouns: %q and %q name the same word", w, other)
	}
	if w, other, ok := collision(c.Generate.SingleChars); ok {
		return fmt.Errorf("generate.single_chars: %q and %q name the same character", w, other)
	}
	for w, p := range c.Generate.ProperNouns {
		if strings.TrimSpace(w) == "" || strings.ContainsAny(w, " \t") {
			return fmt.Errorf("generate.proper_nouns: invalid word %q", w)
		}
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("generate.proper_nouns: empty pronunciation for %q", w)
		}
	}
	for w := range c.Generate.SingleChars {
		if utf8.RuneCountInString(w) != 1 {
			return fmt.Errorf("generate.single_chars: %q is not a single character", w)
		}
	}
	return nil
}

// collision reports two keys of m with the same uppercase form.
func collision(m map[string]string) (a, b string, ok bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		key := g2p.NewWordForm(k).Key
		if prev, dup := seen[key]; dup {
			return prev, k, true
		}
		seen[key] = k
	}
	return "", "", false
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
