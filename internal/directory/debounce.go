package directory

import (
	"sync"
	"time"
)

// SearchDebounceInterval is how long typed search input sits staged before
// it is promoted into the active criteria
const SearchDebounceInterval = 300 * time.Millisecond

// Debouncer coalesces rapid updates into a single promotion after a quiet
// interval. The staged value is held separately from the promoted one, so
// readers always see the last promoted state while typing is in progress.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	staged   string
	pending  bool
	promote  func(string)
	stopped  bool
}

// NewDebouncer creates a debouncer that calls promote with the staged
// value once input has been quiet for the interval
func NewDebouncer(interval time.Duration, promote func(string)) *Debouncer {
	if interval <= 0 {
		interval = SearchDebounceInterval
	}
	return &Debouncer{interval: interval, promote: promote}
}

// Stage records a new value and restarts the quiet timer
func (d *Debouncer) Stage(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.staged = value
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	value := d.staged
	d.pending = false
	d.mu.Unlock()
	d.promote(value)
}

// Flush promotes the staged value immediately, if one is pending.
// Used when the caller needs the criteria settled right now, such as an
// explicit search submit.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	value := d.staged
	d.pending = false
	d.mu.Unlock()
	d.promote(value)
}

// Cancel drops any staged value without promoting it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
}

// Stop cancels the pending promotion and refuses further staging
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
	d.stopped = true
}
