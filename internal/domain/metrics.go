package domain

import (
	"time"
)

// ActivityTotal is the accumulated duration for one activity, in first-seen
// order for stable display.
type ActivityTotal struct {
	ID       string
	Name     string
	Duration time.Duration
	Colors   *ColorSet
}

// Report holds the metrics derived from a timeline and a planned duration.
// Durations carry millisecond precision; callers round to whole seconds only
// when formatting, so accumulation never compounds rounding error.
type Report struct {
	Planned     time.Duration
	Elapsed     time.Duration
	Active      time.Duration
	Idle        time.Duration
	Overtime    time.Duration
	PerActivity []ActivityTotal
}

// Summarize derives idle time, per-activity totals, and overtime from the
// given entries. It is a pure function of (entries, planned, now): open
// entries are treated as ending at now, and gaps between entries count
// forward only, so idle and active can never go negative.
func Summarize(entries []TimelineEntry, planned time.Duration, now time.Time) Report {
	report := Report{Planned: planned}
	if len(entries) == 0 {
		return report
	}

	nowMillis := now.UnixMilli()
	var lastEnd int64

	order := make([]string, 0, len(entries))
	totals := make(map[string]*ActivityTotal)

	for i := range entries {
		entry := &entries[i]
		end := nowMillis
		if entry.EndTime != nil {
			end = *entry.EndTime
		}

		if lastEnd != 0 && entry.StartTime > lastEnd {
			report.Idle += time.Duration(entry.StartTime-lastEnd) * time.Millisecond
		}

		d := entry.Duration(now)
		if entry.ActivityID != nil {
			report.Active += d

			id := *entry.ActivityID
			total, ok := totals[id]
			if !ok {
				name := ""
				if entry.ActivityName != nil {
					name = *entry.ActivityName
				}
				total = &ActivityTotal{ID: id, Name: name, Colors: entry.Colors}
				totals[id] = total
				order = append(order, id)
			}
			total.Duration += d
		} else {
			report.Idle += d
		}

		lastEnd = end
	}

	firstStart := entries[0].StartTime
	lastEntry := &entries[len(entries)-1]
	finalEnd := nowMillis
	if lastEntry.EndTime != nil {
		finalEnd = *lastEntry.EndTime
	}
	if finalEnd > firstStart {
		report.Elapsed = time.Duration(finalEnd-firstStart) * time.Millisecond
	}

	if report.Elapsed > planned {
		report.Overtime = report.Elapsed - planned
	}

	report.PerActivity = make([]ActivityTotal, 0, len(order))
	for _, id := range order {
		report.PerActivity = append(report.PerActivity, *totals[id])
	}

	return report
}

// FormatSeconds renders a duration rounded to whole seconds as h:mm:ss or
// m:ss.
func FormatSeconds(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return itoa(hours) + ":" + pad2(minutes) + ":" + pad2(seconds)
	}
	return itoa(minutes) + ":" + pad2(seconds)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func pad2(n int) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}
