// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) and gameplay tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"baseball/internal/match"
)

// View selects how the field is projected.
type View string

const (
	ViewFlat   View = "flat"
	ViewBehind View = "behind"
)

// UnmarshalText accepts flat (also "2.5d") and behind (also "3d").
func (v *View) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "flat", "2.5d", "top":
		*v = ViewFlat
	case "behind", "3d", "catcher":
		*v = ViewBehind
	default:
		return fmt.Errorf("unknown view %q", string(b))
	}
	return nil
}

func (v View) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

type Config struct {
	Seed    uint64     `env:"BASEBALL_SEED"`
	Mode    match.Mode `env:"BASEBALL_MODE"    envDefault:"game"`
	View    View       `env:"BASEBALL_VIEW"    envDefault:"flat"`
	Tuning  string     `env:"BASEBALL_TUNING"` // path to a YAML tuning file
	Mute    bool       `env:"BASEBALL_MUTE"`
	Verbose bool       `env:"BASEBALL_VERBOSE"`
	Width   int        `env:"BASEBALL_WIDTH"   envDefault:"1100"`
	Height  int        `env:"BASEBALL_HEIGHT"  envDefault:"760"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads dotenv files (missing ones are skipped) and then the
// environment. Variables already set in the environment win over the file.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, p := range dotenv {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", p, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// EffectiveSeed returns the configured seed, or one derived from the clock
// when it is zero.
func (c Config) EffectiveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// LoadTuning returns the default tuning overlaid with the YAML file at
// path. An empty path returns the defaults.
func LoadTuning(path string) (match.Tuning, error) {
	t := match.DefaultTuning()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
