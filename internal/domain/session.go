package domain

import (
	"time"
)

// Session is the shared session timer: one planned duration covering every
// activity, with the timeline recording how that time was spent. Remaining
// time and progress are computed lazily from the start time so no background
// goroutine has to keep the entity up to date.
type Session struct {
	ID          string
	Duration    time.Duration
	StartedAt   *time.Time
	TimerActive bool
	GitBranch   string
	GitCommit   string
}

// NewSession creates a configured but not yet started session.
func NewSession(duration time.Duration) *Session {
	return &Session{
		ID:       generateID(),
		Duration: duration,
	}
}

// Start begins the session clock. Starting an already running session is a
// no-op so activity switches never reset the shared timer.
func (s *Session) Start(now time.Time) {
	if s.TimerActive {
		return
	}
	s.StartedAt = &now
	s.TimerActive = true
}

// Stop halts the session clock.
func (s *Session) Stop() {
	s.TimerActive = false
}

// Extend adds extra time to the planned duration mid-session.
func (s *Session) Extend(extra time.Duration) {
	if extra > 0 {
		s.Duration += extra
	}
}

// Elapsed returns how much wall-clock time has passed since the session
// started, or 0 if it never did.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.StartedAt == nil {
		return 0
	}
	elapsed := now.Sub(*s.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the planned time left, clamped at 0 once the session runs
// over.
func (s *Session) Remaining(now time.Time) time.Duration {
	remaining := s.Duration - s.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Overtime returns how far past the planned duration the session has run.
func (s *Session) Overtime(now time.Time) time.Duration {
	over := s.Elapsed(now) - s.Duration
	if over < 0 {
		return 0
	}
	return over
}

// Progress returns the session completion percentage (0.0 to 1.0).
func (s *Session) Progress(now time.Time) float64 {
	if s.Duration == 0 {
		return 0
	}
	progress := float64(s.Elapsed(now)) / float64(s.Duration)
	if progress > 1 {
		return 1
	}
	return progress
}

// SetGitContext stores the repository state captured when the session
// started.
func (s *Session) SetGitContext(branch, commit string) {
	s.GitBranch = branch
	s.GitCommit = commit
}
