package domain

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testActivity(t *testing.T, name string, colorIndex int) *Activity {
	t.Helper()
	activity, err := NewActivity(name, colorIndex)
	if err != nil {
		t.Fatalf("NewActivity(%q) error: %v", name, err)
	}
	return activity
}

func TestTimeline_StartEntry(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	activity := testActivity(t, "writing", 2)

	entry := timeline.StartEntry(activity, false)

	if entry.ID == "" {
		t.Error("entry ID is empty")
	}
	if entry.ActivityID == nil || *entry.ActivityID != activity.ID {
		t.Errorf("ActivityID = %v, want %v", entry.ActivityID, activity.ID)
	}
	if entry.ActivityName == nil || *entry.ActivityName != "writing" {
		t.Errorf("ActivityName = %v, want writing", entry.ActivityName)
	}
	if entry.StartTime != clock.now.UnixMilli() {
		t.Errorf("StartTime = %v, want %v", entry.StartTime, clock.now.UnixMilli())
	}
	if !entry.IsOpen() {
		t.Error("new entry is not open")
	}
	if entry.Colors == nil {
		t.Error("entry colors not denormalized")
	}
}

func TestTimeline_StartEntry_ForceClosesOpenEntry(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	first := testActivity(t, "reading", 0)
	second := testActivity(t, "writing", 1)

	timeline.StartEntry(first, false)
	clock.Advance(5 * time.Minute)
	timeline.StartEntry(second, false)

	entries := timeline.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].EndTime == nil {
		t.Fatal("first entry still open after switch")
	}
	if *entries[0].EndTime != clock.now.UnixMilli() {
		t.Errorf("first EndTime = %v, want %v", *entries[0].EndTime, clock.now.UnixMilli())
	}
	if entries[1].EndTime != nil {
		t.Error("second entry not open")
	}
}

func TestTimeline_AtMostOneOpenEntry(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)

	for i := 0; i < 5; i++ {
		activity := testActivity(t, "activity", i)
		timeline.StartEntry(activity, false)
		clock.Advance(time.Minute)
	}
	timeline.StartBreak()

	open := 0
	for _, entry := range timeline.Entries() {
		if entry.IsOpen() {
			open++
		}
	}
	if open != 1 {
		t.Errorf("open entries = %d, want 1", open)
	}
}

func TestTimeline_CompleteCurrent_Idempotent(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	activity := testActivity(t, "reading", 0)

	timeline.StartEntry(activity, false)
	clock.Advance(time.Minute)

	if !timeline.CompleteCurrent() {
		t.Fatal("first CompleteCurrent returned false")
	}
	closedAt := *timeline.Entries()[0].EndTime

	clock.Advance(time.Minute)
	if timeline.CompleteCurrent() {
		t.Error("second CompleteCurrent returned true")
	}
	if *timeline.Entries()[0].EndTime != closedAt {
		t.Error("closed EndTime changed on repeated CompleteCurrent")
	}
}

func TestTimeline_CompleteCurrent_Empty(t *testing.T) {
	timeline := NewTimeline()
	if timeline.CompleteCurrent() {
		t.Error("CompleteCurrent on empty timeline returned true")
	}
}

func TestTimeline_CompleteCurrent_DoesNotTouchEarlierEntries(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	first := testActivity(t, "one", 0)
	second := testActivity(t, "two", 1)

	timeline.StartEntry(first, false)
	clock.Advance(time.Minute)
	timeline.StartEntry(second, false)
	firstEnd := *timeline.Entries()[0].EndTime

	clock.Advance(time.Minute)
	timeline.CompleteCurrent()

	if *timeline.Entries()[0].EndTime != firstEnd {
		t.Error("earlier entry EndTime changed")
	}
}

func TestTimeline_StartBreak(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	activity := testActivity(t, "work", 0)

	timeline.StartEntry(activity, false)
	clock.Advance(time.Minute)
	entry := timeline.StartBreak()

	if entry.ActivityID != nil {
		t.Error("break entry has an activity id")
	}
	if !entry.IsOpen() {
		t.Error("break entry is not open")
	}
	if timeline.Entries()[0].EndTime == nil {
		t.Error("previous entry not closed by break")
	}
}

func TestTimeline_HasEntriesFor(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	timeline := NewTimelineWithClock(clock.Now)
	activity := testActivity(t, "work", 0)

	if timeline.HasEntriesFor(activity.ID) {
		t.Error("HasEntriesFor = true on empty timeline")
	}

	timeline.StartEntry(activity, false)

	if !timeline.HasEntriesFor(activity.ID) {
		t.Error("HasEntriesFor = false after StartEntry")
	}
	if timeline.HasEntriesFor("other") {
		t.Error("HasEntriesFor = true for unknown activity")
	}
}

func TestTimeline_Reset(t *testing.T) {
	timeline := NewTimeline()
	activity := testActivity(t, "work", 0)
	timeline.StartEntry(activity, false)

	timeline.Reset()

	if timeline.Len() != 0 {
		t.Errorf("Len = %d after Reset, want 0", timeline.Len())
	}
}

func TestTimeline_Restore(t *testing.T) {
	id := "activity-1"
	end := int64(2000)
	entries := []TimelineEntry{
		{ID: "e1", ActivityID: &id, StartTime: 1000, EndTime: &end},
		{ID: "e2", StartTime: 3000},
	}

	timeline := NewTimeline()
	if err := timeline.Restore(entries); err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if timeline.Len() != 2 {
		t.Errorf("Len = %d, want 2", timeline.Len())
	}
	if timeline.Open() == nil {
		t.Error("open entry lost on Restore")
	}
}

func TestTimeline_Restore_RejectsOpenEntryNotLast(t *testing.T) {
	end := int64(5000)
	entries := []TimelineEntry{
		{ID: "e1", StartTime: 1000},
		{ID: "e2", StartTime: 3000, EndTime: &end},
	}

	timeline := NewTimeline()
	if err := timeline.Restore(entries); err == nil {
		t.Fatal("Restore accepted an open entry before the last")
	}
	if timeline.Len() != 0 {
		t.Errorf("Len = %d after rejected Restore, want 0", timeline.Len())
	}
}

func TestTimeline_Restore_RejectsMalformedEntry(t *testing.T) {
	entries := []TimelineEntry{
		{ID: "", StartTime: 1000},
	}

	timeline := NewTimeline()
	if err := timeline.Restore(entries); err == nil {
		t.Fatal("Restore accepted an entry without an id")
	}
}

func TestTimelineEntry_Duration_ClampsNegative(t *testing.T) {
	entry := TimelineEntry{ID: "e1", StartTime: time.Now().Add(time.Hour).UnixMilli()}
	if d := entry.Duration(time.Now()); d != 0 {
		t.Errorf("Duration = %v, want 0", d)
	}
}
