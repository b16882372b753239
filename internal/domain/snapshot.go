package domain

import (
	"encoding/json"
	"errors"
)

// Snapshot decode errors. Callers that restore on startup treat any of these
// as "no prior session" rather than surfacing them to the user.
var (
	ErrMalformedSnapshot = errors.New("malformed session snapshot")
	ErrMalformedTimeline = errors.New("malformed timeline entry")
)

// SessionSnapshot is the persisted state of a session: the configured
// duration, whether the timer is running, the selected activity, and the
// recorded timeline. It mirrors the JSON blob written on every mutation.
type SessionSnapshot struct {
	TimeSet           bool            `json:"timeSet"`
	TotalDuration     int64           `json:"totalDuration"`
	TimerActive       bool            `json:"timerActive"`
	CurrentActivityID *string         `json:"currentActivityId"`
	TimelineEntries   []TimelineEntry `json:"timelineEntries"`
	SavedAt           int64           `json:"savedAt"`
}

// rawSnapshot decodes with every field optional so presence can be checked
// before the snapshot is accepted.
type rawSnapshot struct {
	TimeSet           *bool           `json:"timeSet"`
	TotalDuration     *int64          `json:"totalDuration"`
	TimerActive       *bool           `json:"timerActive"`
	CurrentActivityID *string         `json:"currentActivityId"`
	TimelineEntries   []rawEntry      `json:"timelineEntries"`
	SavedAt           *int64          `json:"savedAt"`
}

type rawEntry struct {
	ID           *string   `json:"id"`
	ActivityID   *string   `json:"activityId"`
	ActivityName *string   `json:"activityName"`
	StartTime    *int64    `json:"startTime"`
	EndTime      *int64    `json:"endTime"`
	Colors       *ColorSet `json:"colors"`
}

// ValidateEntry checks the shape of a timeline entry: a non-empty id, a
// positive start time, and an end time (when present) not before the start.
func ValidateEntry(e *TimelineEntry) error {
	if e.ID == "" {
		return ErrMalformedTimeline
	}
	if e.StartTime <= 0 {
		return ErrMalformedTimeline
	}
	if e.EndTime != nil && *e.EndTime < e.StartTime {
		return ErrMalformedTimeline
	}
	return nil
}

// DecodeSnapshot parses a persisted snapshot blob. Validation is strict and
// wholesale: a snapshot missing any required field, or containing a single
// malformed entry, is rejected entirely so a corrupt blob can never restore a
// partial session.
func DecodeSnapshot(data []byte) (*SessionSnapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformedSnapshot
	}
	if raw.TimeSet == nil || raw.TotalDuration == nil || raw.TimerActive == nil {
		return nil, ErrMalformedSnapshot
	}
	if *raw.TotalDuration < 0 {
		return nil, ErrMalformedSnapshot
	}

	entries := make([]TimelineEntry, 0, len(raw.TimelineEntries))
	for i := range raw.TimelineEntries {
		entry, err := raw.TimelineEntries[i].toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	snapshot := &SessionSnapshot{
		TimeSet:           *raw.TimeSet,
		TotalDuration:     *raw.TotalDuration,
		TimerActive:       *raw.TimerActive,
		CurrentActivityID: raw.CurrentActivityID,
		TimelineEntries:   entries,
	}
	if raw.SavedAt != nil {
		snapshot.SavedAt = *raw.SavedAt
	}
	return snapshot, nil
}

func (r *rawEntry) toEntry() (TimelineEntry, error) {
	if r.ID == nil || r.StartTime == nil {
		return TimelineEntry{}, ErrMalformedTimeline
	}
	entry := TimelineEntry{
		ID:           *r.ID,
		ActivityID:   r.ActivityID,
		ActivityName: r.ActivityName,
		StartTime:    *r.StartTime,
		EndTime:      r.EndTime,
		Colors:       r.Colors,
	}
	if err := ValidateEntry(&entry); err != nil {
		return TimelineEntry{}, err
	}
	return entry, nil
}

// DecodeEntries parses a persisted raw timeline array with the same strict
// per-entry validation as DecodeSnapshot.
func DecodeEntries(data []byte) ([]TimelineEntry, error) {
	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformedTimeline
	}
	entries := make([]TimelineEntry, 0, len(raw))
	for i := range raw {
		entry, err := raw[i].toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
