package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler for deterministic tests.
type Fake struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	fake      *Fake
	interval  time.Duration
	next      time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewFake returns a Fake at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// Every registers fn to fire each interval of simulated time.
func (f *Fake) Every(interval time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if interval <= 0 {
		interval = time.Nanosecond
	}
	f.seq++
	task := &fakeTask{
		fake:     f,
		interval: interval,
		next:     f.now + interval,
		seq:      f.seq,
		fn:       fn,
	}
	f.tasks = append(f.tasks, task)
	return task
}

func (t *fakeTask) Cancel() {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	t.cancelled = true
}

// Advance moves simulated time forward by d, firing due tasks in order.
// Callbacks run on the calling goroutine without the lock held.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		task := f.nextDue(target)
		if task == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = task.next
		task.next += task.interval
		fn := task.fn
		f.mu.Unlock()
		fn()
	}
}

// Active returns the number of tasks that have not been cancelled.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.tasks {
		if !t.cancelled {
			count++
		}
	}
	return count
}

func (f *Fake) nextDue(target time.Duration) *fakeTask {
	live := f.tasks[:0]
	for _, t := range f.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	f.tasks = live

	var best *fakeTask
	for _, t := range f.tasks {
		if t.next > target {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
