package domain

import (
	"time"
)

// CompletionPhase is the state of a pending activity completion.
type CompletionPhase int

const (
	// PhaseIdle means no completion is in flight.
	PhaseIdle CompletionPhase = iota
	// PhasePending means the countdown is running and can still be cancelled.
	PhasePending
	// PhaseCompleted means the countdown finished and the selection callback
	// has fired.
	PhaseCompleted
	// PhasePrompt means the repeat prompt is showing and waiting for an
	// answer or its timeout.
	PhasePrompt
)

// DefaultCompletionDelay is how long a completion stays cancellable.
const DefaultCompletionDelay = 3 * time.Second

// DefaultPromptTimeout is how long the repeat prompt waits before
// auto-dismissing.
const DefaultPromptTimeout = 5 * time.Second

// CompletionTracker runs the delayed-completion countdown for one activity.
// It holds no timers of its own: callers advance it with Tick and read
// Progress, so the cadence of real time is owned entirely by the caller.
// Every event is a no-op outside the phase it applies to.
type CompletionTracker struct {
	phase        CompletionPhase
	delay        time.Duration
	promptWindow time.Duration
	startedAt    time.Time
	deadline     time.Time
	onSelect     func()
}

// NewCompletionTracker creates an idle tracker. onSelect is invoked when the
// countdown finalizes and again if the repeat prompt is confirmed. Delay and
// promptWindow fall back to the defaults when non-positive.
func NewCompletionTracker(delay, promptWindow time.Duration, onSelect func()) *CompletionTracker {
	if delay <= 0 {
		delay = DefaultCompletionDelay
	}
	if promptWindow <= 0 {
		promptWindow = DefaultPromptTimeout
	}
	return &CompletionTracker{
		delay:        delay,
		promptWindow: promptWindow,
		onSelect:     onSelect,
	}
}

// Phase returns the current phase.
func (c *CompletionTracker) Phase() CompletionPhase {
	return c.phase
}

// Request starts the countdown. Only valid while idle.
func (c *CompletionTracker) Request(now time.Time) bool {
	if c.phase != PhaseIdle {
		return false
	}
	c.phase = PhasePending
	c.startedAt = now
	return true
}

// Cancel aborts a pending countdown before it finalizes. Once the countdown
// has completed it cannot be cancelled.
func (c *CompletionTracker) Cancel() bool {
	if c.phase != PhasePending {
		return false
	}
	c.phase = PhaseIdle
	return true
}

// Progress returns the countdown progress in percent, clamped to [0,100].
// Outside the pending phase it reports 0.
func (c *CompletionTracker) Progress(now time.Time) float64 {
	if c.phase != PhasePending {
		return 0
	}
	elapsed := now.Sub(c.startedAt)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(c.delay) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Tick advances the machine to now. A pending countdown that has reached its
// delay finalizes: the selection callback fires once and the tracker moves to
// the completed phase. The next tick opens the repeat prompt, which
// auto-dismisses once its window has elapsed.
func (c *CompletionTracker) Tick(now time.Time) {
	switch c.phase {
	case PhasePending:
		if now.Sub(c.startedAt) >= c.delay {
			c.phase = PhaseCompleted
			c.deadline = now.Add(c.promptWindow)
			if c.onSelect != nil {
				c.onSelect()
			}
		}
	case PhaseCompleted:
		c.phase = PhasePrompt
		if now.After(c.deadline) {
			c.phase = PhaseIdle
		}
	case PhasePrompt:
		if now.After(c.deadline) {
			c.phase = PhaseIdle
		}
	}
}

// PromptRemaining returns how long the repeat prompt has before it
// auto-dismisses, or 0 when no prompt is showing.
func (c *CompletionTracker) PromptRemaining(now time.Time) time.Duration {
	if c.phase != PhaseCompleted && c.phase != PhasePrompt {
		return 0
	}
	r := c.deadline.Sub(now)
	if r < 0 {
		return 0
	}
	return r
}

// ConfirmRepeat answers the prompt with yes: the selection callback fires
// again, restarting the activity, and the tracker returns to idle.
func (c *CompletionTracker) ConfirmRepeat() bool {
	if c.phase != PhaseCompleted && c.phase != PhasePrompt {
		return false
	}
	c.phase = PhaseIdle
	if c.onSelect != nil {
		c.onSelect()
	}
	return true
}

// Dismiss answers the prompt with no.
func (c *CompletionTracker) Dismiss() bool {
	if c.phase != PhaseCompleted && c.phase != PhasePrompt {
		return false
	}
	c.phase = PhaseIdle
	return true
}

// Teardown aborts whatever is in flight. Safe to call in any phase, any
// number of times.
func (c *CompletionTracker) Teardown() {
	c.phase = PhaseIdle
}

// CompletionSet owns at most one tracker per activity so a countdown and a
// prompt can never race for the same activity.
type CompletionSet struct {
	delay        time.Duration
	promptWindow time.Duration
	trackers     map[string]*CompletionTracker
}

// NewCompletionSet creates an empty set using the given countdown delay and
// prompt window for every tracker it creates.
func NewCompletionSet(delay, promptWindow time.Duration) *CompletionSet {
	return &CompletionSet{
		delay:        delay,
		promptWindow: promptWindow,
		trackers:     make(map[string]*CompletionTracker),
	}
}

// Tracker returns the tracker for an activity, creating it with the given
// selection callback on first use.
func (s *CompletionSet) Tracker(activityID string, onSelect func()) *CompletionTracker {
	if t, ok := s.trackers[activityID]; ok {
		return t
	}
	t := NewCompletionTracker(s.delay, s.promptWindow, onSelect)
	s.trackers[activityID] = t
	return t
}

// Get returns the tracker for an activity, or nil if none exists yet.
func (s *CompletionSet) Get(activityID string) *CompletionTracker {
	return s.trackers[activityID]
}

// Tick advances every tracker to now.
func (s *CompletionSet) Tick(now time.Time) {
	for _, t := range s.trackers {
		t.Tick(now)
	}
}

// Active reports whether any tracker is mid-countdown or prompting.
func (s *CompletionSet) Active() bool {
	for _, t := range s.trackers {
		if t.phase != PhaseIdle {
			return true
		}
	}
	return false
}

// Teardown aborts every tracker and forgets them all.
func (s *CompletionSet) Teardown() {
	for _, t := range s.trackers {
		t.Teardown()
	}
	s.trackers = make(map[string]*CompletionTracker)
}
