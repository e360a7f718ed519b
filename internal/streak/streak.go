// Package streak computes the daily routine streak under the 06:00 duty-day rule.
package streak

import (
	"sort"
	"time"
)

// Compute returns the number of consecutive duty days, ending today or
// yesterday, on which at least one event was logged. Events are read in
// now's location. The input slice is never modified.
func Compute(events []Event, now time.Time) int {
	days := dutyDays(events, now.Location())
	if len(days) == 0 {
		return 0
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i] > days[j] })

	today := dayNumber(now)
	last := days[0]
	if diff := today - last; diff != 0 && diff != 1 {
		return 0
	}

	streak := 1
	current := last
	for _, d := range days[1:] {
		if d == current {
			continue
		}
		if current-d != 1 {
			break
		}
		streak++
		current = d
	}
	return streak
}

// DoneToday reports whether any event falls on today's duty day.
func DoneToday(events []Event, now time.Time) bool {
	today := dayNumber(now)
	for _, d := range dutyDays(events, now.Location()) {
		if d == today {
			return true
		}
	}
	return false
}

// Longest returns the longest run of consecutive duty days anywhere in the
// history, regardless of how long ago it ended.
func Longest(events []Event, loc *time.Location) int {
	days := dutyDays(events, loc)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		switch days[i] - days[i-1] {
		case 0:
			continue
		case 1:
			run++
		default:
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// Source says where a displayed streak value came from.
type Source string

const (
	SourceComputed Source = "computed"
	SourceStored   Source = "stored"
	SourceNone     Source = "none"
)

// Result is a streak value ready for display.
type Result struct {
	Days   int    `json:"days"`
	Source Source `json:"source"`
}

// Resolve prefers the computed streak. The stored counter is used only when
// the history holds no readable events at all; a history that yields zero is
// an authoritative zero.
func Resolve(events []Event, now time.Time, stored int) Result {
	if len(dutyDays(events, now.Location())) > 0 {
		return Result{Days: Compute(events, now), Source: SourceComputed}
	}
	if stored > 0 {
		return Result{Days: stored, Source: SourceStored}
	}
	return Result{Source: SourceNone}
}

func dutyDays(events []Event, loc *time.Location) []int64 {
	if loc == nil {
		loc = time.Local
	}
	days := make([]int64, 0, len(events))
	for _, e := range events {
		t, ok := e.Time(loc)
		if !ok {
			continue
		}
		days = append(days, dayNumber(t.In(loc)))
	}
	return days
}
