package tui

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/verte-zerg/nback/internal/model"
)

// screen holds what the engine last asked the UI to show.
type screen struct {
	speaker *speaker

	showing   bool
	controls  bool
	stimulus  model.Stimulus
	trial     int
	summaries []model.Summary
}

func newScreen(sp *speaker) *screen {
	return &screen{speaker: sp}
}

func (s *screen) OnStimulus(st model.Stimulus, trial int) error {
	s.showing = true
	s.stimulus = st
	s.trial = trial
	return s.speaker.Speak(st.Letter)
}

func (s *screen) OnSessionEnd(summary model.Summary) error {
	s.showing = false
	s.stimulus = model.Stimulus{}
	s.summaries = append(s.summaries, summary)
	return nil
}

func (s *screen) SetControlsEnabled(enabled bool) error {
	s.controls = enabled
	return nil
}

const letterPlaceholder = "{letter}"

// speaker runs an external text-to-speech command for each letter.
type speaker struct {
	template string
	start    func(*exec.Cmd) error
}

func newSpeaker(template string) *speaker {
	return &speaker{
		template: strings.TrimSpace(template),
		start:    startDetached,
	}
}

// Speak launches the command without waiting for it to finish.
func (s *speaker) Speak(letter string) error {
	if s == nil || s.template == "" {
		return nil
	}
	args := speechArgs(s.template, letter)
	if len(args) == 0 {
		return fmt.Errorf("speech command is empty")
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := s.start(cmd); err != nil {
		return fmt.Errorf("failed to speak %q: %w", letter, err)
	}
	return nil
}

// speechArgs splits the template and substitutes the letter. Without a
// placeholder the letter is appended as the last argument.
func speechArgs(template, letter string) []string {
	parts := strings.Fields(template)
	if len(parts) == 0 {
		return nil
	}
	replaced := false
	for i, part := range parts {
		if strings.Contains(part, letterPlaceholder) {
			parts[i] = strings.ReplaceAll(part, letterPlaceholder, strings.ToLower(letter))
			replaced = true
		}
	}
	if !replaced {
		parts = append(parts, strings.ToLower(letter))
	}
	return parts
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		// Reap the process; its exit status is irrelevant.
		_ = cmd.Wait()
	}()
	return nil
}
