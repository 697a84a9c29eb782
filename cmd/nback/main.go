// Package main provides the CLI entrypoint for nback.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/nback/internal/alphabet"
	"github.com/verte-zerg/nback/internal/config"
	"github.com/verte-zerg/nback/internal/engine"
	"github.com/verte-zerg/nback/internal/model"
	"github.com/verte-zerg/nback/internal/stats"
	"github.com/verte-zerg/nback/internal/tui"
)

const (
	defaultN        = 2
	defaultTrials   = 20
	defaultGrid     = 3
	defaultAlphabet = "classic"
	defaultInterval = 3 * time.Second
)

// Where a setting came from, lowest precedence first.
const (
	sourceDefault = iota
	sourceFile
	sourceEnv
	sourceFlag
)

var (
	sessionN         int
	sessionTrials    int
	sessionGrid      int
	sessionLetters   []string
	sessionAlphabet  string
	sessionInterval  time.Duration
	sessionSpeechCmd string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nback",
		Short:         "Terminal dual N-back trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runSessionCmd,
	}

	rootCmd.Flags().IntVar(&sessionN, "n", defaultN, "how many trials back a match refers to")
	rootCmd.Flags().IntVar(&sessionTrials, "trials", defaultTrials, "trials per session")
	rootCmd.Flags().IntVar(&sessionGrid, "grid", defaultGrid, "grid side length (positions = grid*grid)")
	rootCmd.Flags().StringSliceVar(&sessionLetters, "letters", nil, "comma-separated letter alphabet")
	rootCmd.Flags().StringVar(&sessionAlphabet, "alphabet", defaultAlphabet, "built-in alphabet, alphabet file name, or path")
	rootCmd.Flags().DurationVar(&sessionInterval, "interval", defaultInterval, "time between trials")
	rootCmd.Flags().StringVar(&sessionSpeechCmd, "speech-cmd", "", "command that speaks each letter, e.g. \"espeak {letter}\"")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAlphabetsCmd())

	return rootCmd
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	cfg, err := resolveConfig(cmd, fileCfg, envCfg, config.DefaultAlphabetDir())
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("nback needs an interactive terminal")
	}

	logFile, err := openLog(config.DefaultLogPath())
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		log.SetOutput(io.Discard)
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				logErrf("failed to close log: %v\n", cerr)
			}
		}()
	}

	m := tui.NewModel(cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	m.SetProgram(program)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printSummaries(cmd.OutOrStdout(), m.Summaries())
}

// resolveConfig layers flags over environment over file over defaults.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig, envCfg config.EnvConfig, alphabetDir string) (model.Config, error) {
	file := fileCfg.Session

	applyIntConfig(cmd, "n", &sessionN, file.N)
	applyIntConfig(cmd, "trials", &sessionTrials, file.Trials)
	applyIntConfig(cmd, "grid", &sessionGrid, file.Grid)
	applySliceConfig(cmd, "letters", &sessionLetters, file.Letters)
	applyStringConfig(cmd, "alphabet", &sessionAlphabet, file.Alphabet)
	applyStringConfig(cmd, "speech-cmd", &sessionSpeechCmd, file.SpeechCmd)
	if file.Interval != nil {
		interval, err := time.ParseDuration(strings.TrimSpace(*file.Interval))
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid interval %q in config: %w", *file.Interval, err)
		}
		applyDurationConfig(cmd, "interval", &sessionInterval, &interval)
	}

	applyIntConfig(cmd, "n", &sessionN, envCfg.N)
	applyIntConfig(cmd, "trials", &sessionTrials, envCfg.Trials)
	applyIntConfig(cmd, "grid", &sessionGrid, envCfg.Grid)
	applySliceConfig(cmd, "letters", &sessionLetters, envCfg.Letters)
	applyStringConfig(cmd, "alphabet", &sessionAlphabet, envCfg.Alphabet)
	applyStringConfig(cmd, "speech-cmd", &sessionSpeechCmd, envCfg.SpeechCmd)
	applyDurationConfig(cmd, "interval", &sessionInterval, envCfg.Interval)

	lettersSource := settingSource(cmd, "letters", envCfg.Letters != nil, file.Letters != nil)
	alphabetSource := settingSource(cmd, "alphabet", envCfg.Alphabet != nil, file.Alphabet != nil)

	var letters []string
	if len(sessionLetters) > 0 && lettersSource >= alphabetSource {
		letters = alphabet.Normalize(sessionLetters)
	} else {
		resolved, err := alphabet.Resolve(sessionAlphabet, alphabetDir)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load alphabet %q: %w", sessionAlphabet, err)
		}
		letters = resolved
	}

	cfg := model.Config{
		N:         sessionN,
		Trials:    sessionTrials,
		GridSide:  sessionGrid,
		Letters:   letters,
		Interval:  sessionInterval,
		SpeechCmd: strings.TrimSpace(sessionSpeechCmd),
	}
	if err := engine.ValidateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func settingSource(cmd *cobra.Command, name string, inEnv, inFile bool) int {
	switch {
	case cmd.Flags().Changed(name):
		return sourceFlag
	case inEnv:
		return sourceEnv
	case inFile:
		return sourceFile
	default:
		return sourceDefault
	}
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "nback")
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return f, nil
}

func printSummaries(w io.Writer, summaries []model.Summary) error {
	for i, s := range summaries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := stats.RenderSummary(w, s); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newAlphabetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabets",
		Short: "List built-in and custom letter alphabets",
		Args:  cobra.NoArgs,
		RunE:  runAlphabetsCmd,
	}
}

func runAlphabetsCmd(cmd *cobra.Command, _ []string) error {
	return listAlphabets(cmd.OutOrStdout(), config.DefaultAlphabetDir())
}

func listAlphabets(w io.Writer, dir string) error {
	for _, name := range alphabet.Builtins() {
		letters, err := alphabet.Resolve(name, dir)
		if err != nil {
			return fmt.Errorf("failed to load alphabet %q: %w", name, err)
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, strings.Join(letters, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	names, err := alphabet.List(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		letters, err := alphabet.Load(filepath.Join(dir, name+".txt"))
		line := strings.Join(letters, " ")
		if err != nil {
			line = fmt.Sprintf("(unreadable: %v)", err)
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# nback configuration
# Uncomment a value to enable it. NBACK_* variables override these values,
# CLI flags override both.

[session]
# n = %d                       # How many trials back a match refers to
# trials = %d                 # Trials per session (must be greater than n)
# grid = %d                    # Grid side length
# alphabet = %q          # Built-in name, file in %s, or path
# letters = ["C", "H", "K"]    # Explicit alphabet (wins over alphabet)
# interval = %q              # Time between trials
# speech-cmd = "espeak {letter}" # Speak each letter; {letter} is replaced
`,
		defaultN,
		defaultTrials,
		defaultGrid,
		defaultAlphabet,
		config.DefaultAlphabetDir(),
		defaultInterval.String(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
