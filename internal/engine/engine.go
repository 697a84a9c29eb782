// Package engine runs dual N-back sessions.
//
// An Engine is driven from a single goroutine: Start, Stop, Respond and the
// scheduled tick must never run concurrently. The TUI guarantees this by
// dispatching ticks onto its event loop.
package engine

import (
	"fmt"
	"time"

	"github.com/verte-zerg/nback/internal/clock"
	"github.com/verte-zerg/nback/internal/generator"
	"github.com/verte-zerg/nback/internal/model"
)

// State is the engine lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SequenceSource produces the stimulus sequence for a session.
type SequenceSource interface {
	Generate(trials, positions int, letters []string) (model.Sequence, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithErrorHandler receives presentation failures.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithNow overrides the clock used for summary timestamps.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns the trial loop for one session at a time.
type Engine struct {
	cfg       model.Config
	gen       SequenceSource
	sched     clock.Scheduler
	presenter Presenter
	onError   func(error)
	now       func() time.Time

	state     State
	sess      *session
	last      *model.Summary
	lastIndex int
}

// session is the state of a single run, discarded when it ends.
type session struct {
	n         int
	seq       model.Sequence
	index     int
	responded map[model.Modality]bool
	tally     model.Tally
	evals     []model.Evaluation
	task      clock.Task
	startedAt time.Time
}

// New constructs an idle Engine. A nil generator or presenter gets a working
// default. The scheduler is required: its fires must reach the engine on the
// goroutine that calls Start, Stop and Respond.
func New(cfg model.Config, gen SequenceSource, sched clock.Scheduler, presenter Presenter, opts ...Option) *Engine {
	if sched == nil {
		panic("engine: nil scheduler")
	}
	if gen == nil {
		gen = generator.New()
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}
	e := &Engine{
		cfg:       cfg,
		gen:       gen,
		sched:     sched,
		presenter: presenter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure replaces the session settings. It is rejected while running.
func (e *Engine) Configure(cfg model.Config) error {
	if e.state == StateRunning {
		return fmt.Errorf("%w: cannot reconfigure", ErrRunning)
	}
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Config returns the current session settings.
func (e *Engine) Config() model.Config {
	return e.cfg
}

// Start begins a new session comparing each trial with the one n steps back.
// A running session is stopped first. On error nothing changes.
func (e *Engine) Start(n int) error {
	cfg := e.cfg
	cfg.N = n
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	seq, err := e.gen.Generate(cfg.Trials, cfg.Positions(), cfg.Letters)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(seq) != cfg.Trials {
		return fmt.Errorf("%w: generated %d stimuli, want %d", ErrInvalidConfig, len(seq), cfg.Trials)
	}

	e.Stop()

	sess := &session{
		n:         n,
		seq:       seq,
		responded: make(map[model.Modality]bool, 2),
		startedAt: e.now(),
	}
	e.sess = sess
	e.last = nil
	e.state = StateRunning
	sess.task = e.sched.Every(cfg.Interval, func() { e.tick(sess) })

	e.report(e.presenter.SetControlsEnabled(true))
	e.report(e.presenter.OnStimulus(seq[0], 0))
	return nil
}

// Stop ends a running session early. Its summary is still reported.
func (e *Engine) Stop() {
	if e.state != StateRunning {
		return
	}
	e.finish(false)
}

// Respond records that the user saw an N-back match in modality m during the
// current trial. Repeats within a trial are ignored. It reports whether the
// response was recorded.
func (e *Engine) Respond(m model.Modality) bool {
	if e.state != StateRunning || e.sess == nil {
		return false
	}
	if m != model.ModalityPosition && m != model.ModalityLetter {
		return false
	}
	if e.sess.responded[m] {
		return false
	}
	e.sess.responded[m] = true
	return true
}

// Responded reports whether modality m has a response in the current trial.
func (e *Engine) Responded(m model.Modality) bool {
	if e.sess == nil {
		return false
	}
	return e.sess.responded[m]
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// TrialIndex returns the index of the trial on screen.
func (e *Engine) TrialIndex() int {
	if e.sess == nil {
		return e.lastIndex
	}
	return e.sess.index
}

// N returns the back-reference distance of the current or last session.
func (e *Engine) N() int {
	if e.sess != nil {
		return e.sess.n
	}
	if e.last != nil {
		return e.last.N
	}
	return e.cfg.N
}

// Tally returns the running tally, or the last session's final tally.
func (e *Engine) Tally() model.Tally {
	if e.sess != nil {
		return e.sess.tally
	}
	if e.last != nil {
		return e.last.Tally
	}
	return model.Tally{}
}

// LastSummary returns the summary of the most recently ended session.
func (e *Engine) LastSummary() (model.Summary, bool) {
	if e.last == nil {
		return model.Summary{}, false
	}
	return *e.last, true
}

func (e *Engine) tick(sess *session) {
	if e.state != StateRunning || e.sess != sess {
		return
	}
	for _, m := range model.Modalities() {
		if sess.index >= sess.n {
			isMatch := sess.seq[sess.index].Matches(sess.seq[sess.index-sess.n], m)
			outcome := model.Classify(isMatch, sess.responded[m])
			sess.tally.Add(m, outcome)
			sess.evals = append(sess.evals, model.Evaluation{
				Trial:    sess.index,
				Modality: m,
				Outcome:  outcome,
			})
		}
		sess.responded[m] = false
	}
	sess.index++
	if sess.index == len(sess.seq) {
		e.finish(true)
		return
	}
	e.report(e.presenter.OnStimulus(sess.seq[sess.index], sess.index))
}

func (e *Engine) finish(completed bool) {
	sess := e.sess
	sess.task.Cancel()
	summary := model.Summary{
		N:           sess.n,
		Trials:      len(sess.seq),
		Evaluated:   sess.tally.Position.Total(),
		Completed:   completed,
		Tally:       sess.tally,
		Evaluations: sess.evals,
		StartedAt:   sess.startedAt,
		EndedAt:     e.now(),
	}
	e.sess = nil
	e.last = &summary
	e.lastIndex = sess.index
	if completed {
		e.state = StateEnded
	} else {
		e.state = StateIdle
	}
	e.report(e.presenter.SetControlsEnabled(false))
	e.report(e.presenter.OnSessionEnd(summary))
}

func (e *Engine) report(err error) {
	if err == nil || e.onError == nil {
		return
	}
	e.onError(fmt.Errorf("%w: %w", ErrPresentation, err))
}
