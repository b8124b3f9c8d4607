package variations

import (
	"sync"
	"time"
)

// DefaultDebounce matches the edit-settle delay used by template editors.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid template edits into a single analysis. Results
// are delivered last-call-wins: when a newer Analyze call arrives before a
// pending one fires, the older result is discarded without cancellation.
type Debouncer struct {
	analyzer *Analyzer
	delay    time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer wraps an analyzer with a fixed delay. A zero delay falls back
// to DefaultDebounce and a nil analyzer to the package defaults.
func NewDebouncer(analyzer *Analyzer, delay time.Duration) *Debouncer {
	if analyzer == nil {
		analyzer = New(DefaultLimits())
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{analyzer: analyzer, delay: delay}
}

// Analyze schedules an analysis of the template and invokes deliver with the
// result once the delay elapses without a newer call. The callback runs on
// the timer goroutine.
func (d *Debouncer) Analyze(template string, deliver func(Analysis)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		result := d.analyzer.Analyze(template)
		d.mu.Lock()
		superseded := seq != d.seq
		d.mu.Unlock()
		if superseded || deliver == nil {
			return
		}
		deliver(result)
	})
}

// Stop cancels any pending analysis. Safe to call concurrently with Analyze.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
