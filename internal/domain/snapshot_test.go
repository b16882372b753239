package domain

import (
	"encoding/json"
	"testing"
)

func validSnapshotJSON(t *testing.T) []byte {
	t.Helper()
	activityID := "activity-1"
	snapshot := SessionSnapshot{
		TimeSet:           true,
		TotalDuration:     3600,
		TimerActive:       true,
		CurrentActivityID: &activityID,
		TimelineEntries: []TimelineEntry{
			{ID: "e1", ActivityID: &activityID, StartTime: 1000, EndTime: millisPtr(2000)},
			{ID: "e2", ActivityID: &activityID, StartTime: 2000},
		},
		SavedAt: 5000,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	decoded, err := DecodeSnapshot(validSnapshotJSON(t))
	if err != nil {
		t.Fatalf("DecodeSnapshot error: %v", err)
	}

	if !decoded.TimeSet || !decoded.TimerActive {
		t.Error("boolean fields lost in round trip")
	}
	if decoded.TotalDuration != 3600 {
		t.Errorf("TotalDuration = %d, want 3600", decoded.TotalDuration)
	}
	if decoded.CurrentActivityID == nil || *decoded.CurrentActivityID != "activity-1" {
		t.Errorf("CurrentActivityID = %v, want activity-1", decoded.CurrentActivityID)
	}
	if len(decoded.TimelineEntries) != 2 {
		t.Fatalf("len(TimelineEntries) = %d, want 2", len(decoded.TimelineEntries))
	}
	if decoded.TimelineEntries[1].EndTime != nil {
		t.Error("open entry gained an end time")
	}
	if decoded.SavedAt != 5000 {
		t.Errorf("SavedAt = %d, want 5000", decoded.SavedAt)
	}
}

func TestDecodeSnapshot_TruncatedJSON(t *testing.T) {
	data := validSnapshotJSON(t)
	if _, err := DecodeSnapshot(data[:len(data)/2]); err == nil {
		t.Error("DecodeSnapshot accepted truncated JSON")
	}
}

func TestDecodeSnapshot_MissingField(t *testing.T) {
	cases := []string{
		`{"totalDuration":3600,"timerActive":true,"timelineEntries":[]}`,
		`{"timeSet":true,"timerActive":true,"timelineEntries":[]}`,
		`{"timeSet":true,"totalDuration":3600,"timelineEntries":[]}`,
	}

	for _, data := range cases {
		if _, err := DecodeSnapshot([]byte(data)); err == nil {
			t.Errorf("DecodeSnapshot accepted snapshot missing a field: %s", data)
		}
	}
}

func TestDecodeSnapshot_NegativeDuration(t *testing.T) {
	data := `{"timeSet":true,"totalDuration":-5,"timerActive":false,"timelineEntries":[]}`
	if _, err := DecodeSnapshot([]byte(data)); err == nil {
		t.Error("DecodeSnapshot accepted a negative duration")
	}
}

func TestDecodeSnapshot_WrongFieldType(t *testing.T) {
	data := `{"timeSet":"yes","totalDuration":3600,"timerActive":true,"timelineEntries":[]}`
	if _, err := DecodeSnapshot([]byte(data)); err == nil {
		t.Error("DecodeSnapshot accepted a string where a bool belongs")
	}
}

func TestDecodeSnapshot_OneBadEntryRejectsWhole(t *testing.T) {
	data := `{
		"timeSet": true,
		"totalDuration": 3600,
		"timerActive": false,
		"timelineEntries": [
			{"id": "e1", "activityId": "a", "startTime": 1000, "endTime": 2000},
			{"id": "e2", "activityId": "a", "endTime": 3000}
		]
	}`

	if _, err := DecodeSnapshot([]byte(data)); err == nil {
		t.Error("DecodeSnapshot accepted a snapshot with a malformed entry")
	}
}

func TestDecodeSnapshot_NoEntries(t *testing.T) {
	data := `{"timeSet":false,"totalDuration":0,"timerActive":false,"timelineEntries":[]}`
	decoded, err := DecodeSnapshot([]byte(data))
	if err != nil {
		t.Fatalf("DecodeSnapshot error: %v", err)
	}
	if len(decoded.TimelineEntries) != 0 {
		t.Errorf("len(TimelineEntries) = %d, want 0", len(decoded.TimelineEntries))
	}
}

func TestValidateEntry(t *testing.T) {
	good := TimelineEntry{ID: "e1", StartTime: 1000}
	if err := ValidateEntry(&good); err != nil {
		t.Errorf("ValidateEntry(good) = %v", err)
	}

	noID := TimelineEntry{StartTime: 1000}
	if err := ValidateEntry(&noID); err == nil {
		t.Error("ValidateEntry accepted an empty id")
	}

	zeroStart := TimelineEntry{ID: "e1"}
	if err := ValidateEntry(&zeroStart); err == nil {
		t.Error("ValidateEntry accepted a zero start time")
	}

	backwards := TimelineEntry{ID: "e1", StartTime: 2000, EndTime: millisPtr(1000)}
	if err := ValidateEntry(&backwards); err == nil {
		t.Error("ValidateEntry accepted endTime before startTime")
	}
}

func TestDecodeEntries(t *testing.T) {
	data := `[{"id":"e1","activityId":"a","startTime":1000,"endTime":2000}]`
	entries, err := DecodeEntries([]byte(data))
	if err != nil {
		t.Fatalf("DecodeEntries error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].ActivityID == nil || *entries[0].ActivityID != "a" {
		t.Errorf("ActivityID = %v, want a", entries[0].ActivityID)
	}
}

func TestDecodeEntries_Malformed(t *testing.T) {
	if _, err := DecodeEntries([]byte(`[{"startTime":1000}]`)); err == nil {
		t.Error("DecodeEntries accepted an entry without an id")
	}
	if _, err := DecodeEntries([]byte(`not json`)); err == nil {
		t.Error("DecodeEntries accepted invalid JSON")
	}
}
