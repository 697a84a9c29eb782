// Package clock provides cancellable repeating tasks.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a scheduled repeating callback.
type Task interface {
	// Cancel stops future fires. Calling it more than once is safe.
	Cancel()
}

// Scheduler runs fn every interval until the returned Task is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// Dispatch hands a fire to the goroutine that owns the callback's state.
type Dispatch func(func())

// Ticker is a Scheduler backed by time.Ticker.
type Ticker struct {
	dispatch Dispatch
}

// NewTicker returns a Ticker that hands every fire to dispatch. Callbacks never
// run on the ticker goroutine itself.
func NewTicker(dispatch Dispatch) *Ticker {
	if dispatch == nil {
		panic("clock: nil dispatch")
	}
	return &Ticker{dispatch: dispatch}
}

// Every starts a goroutine that fires fn each interval.
func (t *Ticker) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{done: make(chan struct{})}
	go task.run(interval, fn, t.dispatch)
	return task
}

type tickerTask struct {
	cancelled atomic.Bool
	once      sync.Once
	done      chan struct{}
}

func (t *tickerTask) run(interval time.Duration, fn func(), dispatch Dispatch) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			dispatch(func() {
				// A fire may already be queued on the owner when Cancel runs.
				if t.cancelled.Load() {
					return
				}
				fn()
			})
		}
	}
}

func (t *tickerTask) Cancel() {
	t.cancelled.Store(true)
	t.once.Do(func() { close(t.done) })
}
