package players

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search term is used.
const DefaultDebounce = 500 * time.Millisecond

type stopper interface {
	Stop() bool
}

// Debouncer delivers only the last value submitted within a quiet period.
type Debouncer[T any] struct {
	delay     time.Duration
	emit      func(T)
	afterFunc func(time.Duration, func()) stopper

	mu      sync.Mutex
	timer   stopper
	pending T
	has     bool
	gen     uint64
	stopped bool
}

// NewDebouncer calls emit with the latest value once delay passes without a new Submit.
// A non-positive delay uses DefaultDebounce.
func NewDebouncer[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{
		delay: delay,
		emit:  emit,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Submit records v and restarts the quiet period.
func (d *Debouncer[T]) Submit(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = v
	d.has = true
	d.gen++
	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// Flush emits the pending value now, if any.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v, ok := d.take()
	d.mu.Unlock()
	if ok {
		d.emit(v)
	}
}

// Stop drops any pending value and ignores later submissions.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
	d.has = false
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v, ok := d.take()
	d.mu.Unlock()
	if ok {
		d.emit(v)
	}
}

// take expects d.mu to be held.
func (d *Debouncer[T]) take() (T, bool) {
	var zero T
	if !d.has {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.has = false
	return v, true
}
