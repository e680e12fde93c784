// Package timer provides wall-clock timing for command activities.
//
// A Timer tracks the total elapsed time since Start and the elapsed time of
// the current stage. Commands start a new stage per activity so success
// messages can report both the stage duration and the running total.
package timer

import "time"

// Timer measures total and per-stage elapsed time.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the current stage's elapsed time.
	GetTiming() (total, stage time.Duration)
	// Stop ends timing. Durations are frozen at the time of the call.
	Stop()
}

// New creates a started Timer.
func New() Timer {
	t := &clockTimer{}
	t.Start()

	return t
}

// clockTimer is the wall-clock Timer implementation.
type clockTimer struct {
	start      time.Time
	stageStart time.Time
	stopped    time.Time
}

func (t *clockTimer) Start() {
	now := time.Now()
	t.start = now
	t.stageStart = now
	t.stopped = time.Time{}
}

func (t *clockTimer) NewStage() {
	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	end := t.stopped
	if end.IsZero() {
		end = time.Now()
	}

	return end.Sub(t.start), end.Sub(t.stageStart)
}

func (t *clockTimer) Stop() {
	t.stopped = time.Now()
}
