package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

// SessionService handles the shared session timer and the activity timeline.
// It keeps the working state in memory and mirrors every mutation to the
// snapshot store, so a crash or restart can recover the running session.
type SessionService struct {
	storage     ports.Storage
	gitDetector ports.GitDetector

	defaultDuration time.Duration
	maxRecoveryAge  time.Duration
	dark            bool
	now             func() time.Time

	session         *domain.Session
	timeline        *domain.Timeline
	currentActivity *domain.Activity
	onBreak         bool
}

// Ensure SessionService can back the MCP server.
var _ ports.MCPStateProvider = (*SessionService)(nil)

// SessionOptions configures a SessionService.
type SessionOptions struct {
	DefaultDuration time.Duration
	MaxRecoveryAge  time.Duration
	DarkTheme       bool
	Clock           func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(storage ports.Storage, gitDetector ports.GitDetector, opts SessionOptions) *SessionService {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = time.Hour
	}
	if opts.MaxRecoveryAge <= 0 {
		opts.MaxRecoveryAge = 24 * time.Hour
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &SessionService{
		storage:         storage,
		gitDetector:     gitDetector,
		defaultDuration: opts.DefaultDuration,
		maxRecoveryAge:  opts.MaxRecoveryAge,
		dark:            opts.DarkTheme,
		now:             opts.Clock,
		session:         domain.NewSession(opts.DefaultDuration),
		timeline:        domain.NewTimelineWithClock(opts.Clock),
	}
}

// Load restores a previously persisted session if one exists and is fresh
// enough to recover. A missing, corrupt, or stale snapshot leaves the service
// with a fresh session; corruption is never surfaced as an error here.
func (s *SessionService) Load(ctx context.Context) error {
	blob, err := s.storage.Snapshots().Get(ctx, ports.KeyCurrentSession)
	if err != nil {
		return fmt.Errorf("failed to read session snapshot: %w", err)
	}
	if blob == nil {
		return nil
	}

	snapshot, err := domain.DecodeSnapshot(blob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: discarding corrupt session snapshot: %v\n", err)
		s.clearPersisted(ctx)
		return nil
	}

	if snapshot.SavedAt > 0 {
		age := s.now().Sub(time.UnixMilli(snapshot.SavedAt))
		if age > s.maxRecoveryAge {
			s.clearPersisted(ctx)
			return nil
		}
	}

	if err := s.timeline.Restore(snapshot.TimelineEntries); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: discarding malformed timeline: %v\n", err)
		s.clearPersisted(ctx)
		return nil
	}

	s.session = domain.NewSession(time.Duration(snapshot.TotalDuration) * time.Second)
	if snapshot.TimerActive && len(snapshot.TimelineEntries) > 0 {
		s.session.Start(time.UnixMilli(snapshot.TimelineEntries[0].StartTime))
	}

	if snapshot.CurrentActivityID != nil {
		activity, err := s.storage.Activities().FindByID(ctx, *snapshot.CurrentActivityID)
		if err == nil {
			s.currentActivity = activity
		}
	}
	if open := s.timeline.Open(); open != nil && open.ActivityID == nil {
		s.onBreak = true
	}

	return nil
}

// Setup configures the planned session duration.
func (s *SessionService) Setup(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return domain.ErrNoSessionConfigured
	}

	s.session = domain.NewSession(duration)
	s.timeline.Reset()
	s.currentActivity = nil
	s.onBreak = false
	s.persist(ctx)
	return nil
}

// SelectActivity switches time tracking to the given activity. Selecting the
// activity already being tracked toggles it off instead, closing its entry.
// The previous open entry is always closed by the switch, and the shared
// session clock starts on the first selection.
func (s *SessionService) SelectActivity(ctx context.Context, ref string) (*domain.Activity, error) {
	if s.session.Duration <= 0 {
		return nil, domain.ErrNoSessionConfigured
	}

	if s.currentActivity != nil && !s.onBreak &&
		(ref == s.currentActivity.ID || ref == s.currentActivity.Name) {
		s.timeline.CompleteCurrent()
		s.currentActivity = nil
		s.persist(ctx)
		return nil, nil
	}

	activity, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !s.session.TimerActive {
		s.session.Start(s.now())
		s.captureGitContext(ctx)
	}

	s.timeline.StartEntry(activity, s.dark)
	s.currentActivity = activity
	s.onBreak = false
	s.persist(ctx)

	return activity, nil
}

// StartBreak records an explicit break: the open entry closes and an
// activity-less entry opens in its place.
func (s *SessionService) StartBreak(ctx context.Context) error {
	if !s.session.TimerActive {
		return domain.ErrNoSessionConfigured
	}

	s.timeline.StartBreak()
	s.currentActivity = nil
	s.onBreak = true
	s.persist(ctx)
	return nil
}

// CompleteCurrent closes the open timeline entry, leaving the session idle.
func (s *SessionService) CompleteCurrent(ctx context.Context) bool {
	closed := s.timeline.CompleteCurrent()
	s.currentActivity = nil
	s.onBreak = false
	if closed {
		s.persist(ctx)
	}
	return closed
}

// AddOneMinute extends the planned duration by sixty seconds mid-session.
func (s *SessionService) AddOneMinute(ctx context.Context) {
	s.session.Extend(time.Minute)
	s.persist(ctx)
}

// Reset clears the session, the timeline, and everything persisted.
func (s *SessionService) Reset(ctx context.Context) {
	s.session = domain.NewSession(s.defaultDuration)
	s.timeline.Reset()
	s.currentActivity = nil
	s.onBreak = false
	s.clearPersisted(ctx)
}

// RemoveActivity soft-deletes an activity. Removal is refused while the
// timeline still references it, so recorded history keeps a valid owner.
func (s *SessionService) RemoveActivity(ctx context.Context, id string) error {
	activity, err := s.storage.Activities().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if s.timeline.HasEntriesFor(id) {
		return domain.ErrActivityInUse
	}
	if s.currentActivity != nil && s.currentActivity.ID == id {
		return domain.ErrActivityInUse
	}

	activity.Deactivate()
	if err := s.storage.Activities().Update(ctx, activity); err != nil {
		return fmt.Errorf("failed to deactivate activity: %w", err)
	}

	return nil
}

// GetCurrentState builds the aggregate view of the running tracker.
func (s *SessionService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	activities, err := s.storage.Activities().FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	entries := s.timeline.Entries()
	return &domain.CurrentState{
		Session:         s.session,
		CurrentActivity: s.currentActivity,
		Activities:      activities,
		Entries:         entries,
		Report:          domain.Summarize(entries, s.session.Duration, s.now()),
		OnBreak:         s.onBreak,
	}, nil
}

// CreateActivity implements ports.MCPStateProvider. It routes through the
// same color slot allocation as the add command.
func (s *SessionService) CreateActivity(ctx context.Context, name, description string) (*domain.Activity, error) {
	return NewActivityService(s.storage).AddActivity(ctx, AddActivityRequest{
		Name:        name,
		Description: description,
	})
}

// ListActivities implements ports.MCPStateProvider.
func (s *SessionService) ListActivities(ctx context.Context, includeInactive bool) ([]*domain.Activity, error) {
	return s.storage.Activities().FindAll(ctx, includeInactive)
}

// GetTimeline implements ports.MCPStateProvider.
func (s *SessionService) GetTimeline(ctx context.Context) ([]domain.TimelineEntry, error) {
	return s.timeline.Entries(), nil
}

// GetSummary implements ports.MCPStateProvider.
func (s *SessionService) GetSummary(ctx context.Context) (*domain.Report, error) {
	report := domain.Summarize(s.timeline.Entries(), s.session.Duration, s.now())
	return &report, nil
}

// Session returns the shared session timer.
func (s *SessionService) Session() *domain.Session {
	return s.session
}

// CurrentActivity returns the activity being tracked, or nil.
func (s *SessionService) CurrentActivity() *domain.Activity {
	return s.currentActivity
}

// OnBreak reports whether an explicit break is running.
func (s *SessionService) OnBreak() bool {
	return s.onBreak
}

func (s *SessionService) resolve(ctx context.Context, ref string) (*domain.Activity, error) {
	activity, err := s.storage.Activities().FindByID(ctx, ref)
	if err == nil {
		return activity, nil
	}
	if err != domain.ErrActivityNotFound {
		return nil, err
	}
	return s.storage.Activities().FindByName(ctx, ref)
}

func (s *SessionService) captureGitContext(ctx context.Context) {
	if s.gitDetector == nil || !s.gitDetector.IsAvailable() {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	info, err := s.gitDetector.Detect(ctx, wd)
	if err == nil && info != nil {
		s.session.SetGitContext(info.Branch, info.Commit)
	}
}

// persist mirrors the in-memory state to the snapshot store. Failures are
// logged and swallowed so a storage hiccup never blocks tracking.
func (s *SessionService) persist(ctx context.Context) {
	entries := s.timeline.Entries()

	var currentID *string
	if s.currentActivity != nil && !s.onBreak {
		currentID = &s.currentActivity.ID
	}

	snapshot := domain.SessionSnapshot{
		TimeSet:           s.session.Duration > 0,
		TotalDuration:     int64(s.session.Duration / time.Second),
		TimerActive:       s.session.TimerActive,
		CurrentActivityID: currentID,
		TimelineEntries:   entries,
		SavedAt:           s.now().UnixMilli(),
	}

	if blob, err := json.Marshal(snapshot); err == nil {
		if err := s.storage.Snapshots().Put(ctx, ports.KeyCurrentSession, blob); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist session: %v\n", err)
		}
	}

	if blob, err := json.Marshal(entries); err == nil {
		if err := s.storage.Snapshots().Put(ctx, ports.KeyTimelineEntries, blob); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist timeline: %v\n", err)
		}
	}
}

func (s *SessionService) clearPersisted(ctx context.Context) {
	if err := s.storage.Snapshots().Delete(ctx, ports.KeyCurrentSession); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to clear session snapshot: %v\n", err)
	}
	if err := s.storage.Snapshots().Delete(ctx, ports.KeyTimelineEntries); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to clear timeline: %v\n", err)
	}
}
