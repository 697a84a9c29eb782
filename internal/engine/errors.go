package engine

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/nback/internal/model"
)

var (
	// ErrInvalidConfig marks a configuration that cannot start a session.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrPresentation marks a failed presenter side effect.
	ErrPresentation = errors.New("presentation failure")
	// ErrRunning marks an operation that needs the session to be stopped.
	ErrRunning = errors.New("session is running")
)

// ValidateConfig checks a configuration before a session starts.
func ValidateConfig(cfg model.Config) error {
	if cfg.N < 1 {
		return fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidConfig, cfg.N)
	}
	if cfg.Trials <= cfg.N {
		return fmt.Errorf("%w: trials must be > n (trials=%d, n=%d)", ErrInvalidConfig, cfg.Trials, cfg.N)
	}
	if cfg.GridSide < 1 {
		return fmt.Errorf("%w: grid must be >= 1, got %d", ErrInvalidConfig, cfg.GridSide)
	}
	if len(cfg.Letters) == 0 {
		return fmt.Errorf("%w: letter alphabet is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(cfg.Letters))
	for _, l := range cfg.Letters {
		if l == "" {
			return fmt.Errorf("%w: letter alphabet contains an empty symbol", ErrInvalidConfig)
		}
		if _, ok := seen[l]; ok {
			return fmt.Errorf("%w: duplicate letter %q", ErrInvalidConfig, l)
		}
		seen[l] = struct{}{}
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("%w: interval must be > 0, got %s", ErrInvalidConfig, cfg.Interval)
	}
	return nil
}
