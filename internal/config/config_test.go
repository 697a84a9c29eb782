package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.Session.N != nil || cfg.Session.Letters != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[session]
n = 3
trials = 30
grid = 4
letters = ["A", "B", "C"]
interval = "2500ms"
speech-cmd = "espeak {letter}"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	s := cfg.Session
	if s.N == nil || *s.N != 3 {
		t.Fatalf("unexpected n: %v", s.N)
	}
	if s.Trials == nil || *s.Trials != 30 || s.Grid == nil || *s.Grid != 4 {
		t.Fatalf("unexpected trials/grid: %v %v", s.Trials, s.Grid)
	}
	if strings.Join(s.Letters, "") != "ABC" {
		t.Fatalf("unexpected letters: %v", s.Letters)
	}
	if s.Interval == nil || *s.Interval != "2500ms" {
		t.Fatalf("unexpected interval: %v", s.Interval)
	}
	if s.SpeechCmd == nil || *s.SpeechCmd != "espeak {letter}" {
		t.Fatalf("unexpected speech cmd: %v", s.SpeechCmd)
	}
	if s.Alphabet != nil {
		t.Fatalf("expected alphabet unset")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[session]\nwords = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseEnvOverrides(t *testing.T) {
	cfg, err := parseEnv(env.Options{Environment: map[string]string{
		"NBACK_N":        "4",
		"NBACK_LETTERS":  "X,Y,Z",
		"NBACK_INTERVAL": "1500ms",
	}})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.N == nil || *cfg.N != 4 {
		t.Fatalf("unexpected n: %v", cfg.N)
	}
	if strings.Join(cfg.Letters, "") != "XYZ" {
		t.Fatalf("unexpected letters: %v", cfg.Letters)
	}
	if cfg.Interval == nil || *cfg.Interval != 1500*time.Millisecond {
		t.Fatalf("unexpected interval: %v", cfg.Interval)
	}
	if cfg.Trials != nil || cfg.SpeechCmd != nil {
		t.Fatalf("expected unset variables to stay nil")
	}
}

func TestParseEnvInvalidValue(t *testing.T) {
	_, err := parseEnv(env.Options{Environment: map[string]string{"NBACK_TRIALS": "many"}})
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "nback", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "nback", "nback.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
