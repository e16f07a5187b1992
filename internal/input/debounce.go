package input

import "time"

// Debouncer suppresses repeat presses of the same button inside the window.
// Physical GPIO buttons bounce; the window mirrors the switch settle time.
type Debouncer struct {
	window time.Duration
	last   map[Button]time.Time
}

// NewDebouncer creates a debouncer with the given suppression window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		last:   make(map[Button]time.Time),
	}
}

// Allow reports whether a press at the given instant should be delivered.
// Allowed presses start a new suppression window for that button.
func (d *Debouncer) Allow(button Button, at time.Time) bool {
	if d.window <= 0 {
		return true
	}
	if last, ok := d.last[button]; ok && at.Sub(last) < d.window {
		return false
	}
	d.last[button] = at
	return true
}
