package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the idle window before a pending query runs.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc computes the results for one query. The context is canceled when
// a newer query supersedes this one.
type RunFunc func(ctx context.Context, query string) []Match

// DeliverFunc receives the results of the most recent query.
type DeliverFunc func(query string, results []Match)

// Debouncer schedules one search per idle period for a stream of inputs.
// Every Trigger cancels the previously scheduled task and schedules a new
// one after the idle window. Runs are serialized, so a run never overlaps
// the previous one, and results of superseded queries are dropped: only
// the latest query's results are delivered.
type Debouncer struct {
	window  time.Duration
	run     RunFunc
	deliver DeliverFunc

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending string
	cancel  context.CancelFunc
	stopped bool

	// runMu serializes runs and deliveries.
	runMu sync.Mutex
}

// NewDebouncer creates a Debouncer. A non-positive window uses
// DefaultDebounce.
func NewDebouncer(window time.Duration, run RunFunc, deliver DeliverFunc) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, run: run, deliver: deliver}
}

// Trigger records a new input. Any pending task is canceled, as is the
// context of a run still working on an older query.
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.seq++
	id := d.seq
	d.pending = query
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(id) })
}

// Flush runs the pending query now instead of waiting for the idle window.
// It does nothing when no task is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil || !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	id := d.seq
	d.mu.Unlock()
	d.fire(id)
}

// Stop cancels the pending task and any in-flight run. Later triggers are
// ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer) fire(id uint64) {
	d.mu.Lock()
	if d.stopped || id != d.seq {
		d.mu.Unlock()
		return
	}
	query := d.pending
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()

	d.runMu.Lock()
	defer d.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	results := d.run(ctx, query)
	if ctx.Err() != nil || !d.current(id) {
		return
	}
	d.deliver(query, results)
}

func (d *Debouncer) current(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && id == d.seq
}
