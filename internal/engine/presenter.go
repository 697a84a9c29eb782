package engine

import "github.com/verte-zerg/nback/internal/model"

// Presenter renders engine output. Calls are fire-and-forget: an error is
// reported to the engine's error handler and never stops the session.
type Presenter interface {
	OnStimulus(s model.Stimulus, trial int) error
	OnSessionEnd(summary model.Summary) error
	SetControlsEnabled(enabled bool) error
}

// NopPresenter discards all output.
type NopPresenter struct{}

func (NopPresenter) OnStimulus(model.Stimulus, int) error { return nil }

func (NopPresenter) OnSessionEnd(model.Summary) error { return nil }

func (NopPresenter) SetControlsEnabled(bool) error { return nil }
