package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig maps NBACK_* environment overrides. Unset variables stay nil.
type EnvConfig struct {
	N         *int           `env:"NBACK_N"`
	Trials    *int           `env:"NBACK_TRIALS"`
	Grid      *int           `env:"NBACK_GRID"`
	Letters   []string       `env:"NBACK_LETTERS" envSeparator:","`
	Alphabet  *string        `env:"NBACK_ALPHABET"`
	Interval  *time.Duration `env:"NBACK_INTERVAL"`
	SpeechCmd *string        `env:"NBACK_SPEECH_CMD"`
}

// LoadEnv reads overrides from the process environment.
func LoadEnv() (EnvConfig, error) {
	return parseEnv(env.Options{})
}

func parseEnv(opts env.Options) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
