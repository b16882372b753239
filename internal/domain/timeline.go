package domain

import (
	"time"
)

// TimelineEntry is one recorded interval, optionally attributed to an
// activity. An entry with a nil ActivityID is an explicit break. Name and
// colors are denormalized at creation time so past entries keep their
// original display even if the activity is later renamed or removed.
type TimelineEntry struct {
	ID           string    `json:"id"`
	ActivityID   *string   `json:"activityId"`
	ActivityName *string   `json:"activityName"`
	StartTime    int64     `json:"startTime"`
	EndTime      *int64    `json:"endTime"`
	Colors       *ColorSet `json:"colors,omitempty"`
}

// IsOpen reports whether the entry has not been closed yet.
func (e *TimelineEntry) IsOpen() bool {
	return e.EndTime == nil
}

// Duration returns the entry's length, using now as the end boundary for an
// open entry.
func (e *TimelineEntry) Duration(now time.Time) time.Duration {
	end := now.UnixMilli()
	if e.EndTime != nil {
		end = *e.EndTime
	}
	d := time.Duration(end-e.StartTime) * time.Millisecond
	if d < 0 {
		return 0
	}
	return d
}

// Timeline owns the ordered sequence of activity intervals. It enforces the
// single-open-entry invariant itself: starting a new entry closes whatever
// is open, so callers cannot break the invariant through ordering mistakes.
type Timeline struct {
	entries []TimelineEntry
	now     func() time.Time
}

// NewTimeline creates an empty timeline using wall-clock time.
func NewTimeline() *Timeline {
	return NewTimelineWithClock(time.Now)
}

// NewTimelineWithClock creates an empty timeline with an injectable clock.
func NewTimelineWithClock(now func() time.Time) *Timeline {
	if now == nil {
		now = time.Now
	}
	return &Timeline{now: now}
}

// StartEntry closes any open entry at now and appends a new open entry for
// the given activity, denormalizing its name and colors.
func (t *Timeline) StartEntry(activity *Activity, dark bool) *TimelineEntry {
	t.CompleteCurrent()

	name := activity.Name
	colors := activity.Colors(dark)
	entry := TimelineEntry{
		ID:           generateID(),
		ActivityID:   &activity.ID,
		ActivityName: &name,
		StartTime:    t.now().UnixMilli(),
		Colors:       &colors,
	}
	t.entries = append(t.entries, entry)
	return &t.entries[len(t.entries)-1]
}

// StartBreak closes any open entry and appends an open entry with no
// activity attribution.
func (t *Timeline) StartBreak() *TimelineEntry {
	t.CompleteCurrent()

	entry := TimelineEntry{
		ID:        generateID(),
		StartTime: t.now().UnixMilli(),
	}
	t.entries = append(t.entries, entry)
	return &t.entries[len(t.entries)-1]
}

// CompleteCurrent closes the last entry if it is open. It is idempotent: an
// empty timeline or an already-closed last entry is a no-op, and earlier
// entries are never touched.
func (t *Timeline) CompleteCurrent() bool {
	if len(t.entries) == 0 {
		return false
	}
	last := &t.entries[len(t.entries)-1]
	if last.EndTime != nil {
		return false
	}
	end := t.now().UnixMilli()
	last.EndTime = &end
	return true
}

// Open returns the currently open entry, or nil.
func (t *Timeline) Open() *TimelineEntry {
	if len(t.entries) == 0 {
		return nil
	}
	last := &t.entries[len(t.entries)-1]
	if last.EndTime == nil {
		return last
	}
	return nil
}

// Entries returns a copy of the recorded entries in append order.
func (t *Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// HasEntriesFor reports whether any entry references the given activity.
func (t *Timeline) HasEntriesFor(activityID string) bool {
	for i := range t.entries {
		if t.entries[i].ActivityID != nil && *t.entries[i].ActivityID == activityID {
			return true
		}
	}
	return false
}

// Reset clears the entire timeline. Only an explicit session reset calls
// this; individual entries are never deleted.
func (t *Timeline) Reset() {
	t.entries = nil
}

// Restore replaces the timeline with persisted entries. Entries that fail
// shape validation, or a set violating the single-open-entry invariant, are
// rejected wholesale and the timeline is left empty.
func (t *Timeline) Restore(entries []TimelineEntry) error {
	open := 0
	for i := range entries {
		if err := ValidateEntry(&entries[i]); err != nil {
			t.entries = nil
			return err
		}
		if entries[i].EndTime == nil {
			open++
			if i != len(entries)-1 {
				t.entries = nil
				return ErrMalformedTimeline
			}
		}
	}
	if open > 1 {
		t.entries = nil
		return ErrMalformedTimeline
	}
	t.entries = make([]TimelineEntry, len(entries))
	copy(t.entries, entries)
	return nil
}
