package models

import (
	"time"
)

// SyncSchedule describes when a scheduled sync profile should run: either at
// a fixed time of day on selected weekdays, or on a plain interval. Days use
// ISO numbering, 1 = Monday through 7 = Sunday; an empty day set means every
// day.
type SyncSchedule struct {
	Enabled  bool
	Time     string // "HH:MM", empty for interval-based scheduling
	Interval int    // minutes, used when Time is empty
	Days     []int
}

// DayEnabled reports whether the schedule may fire on the given weekday.
func (s *SyncSchedule) DayEnabled(day time.Weekday) bool {
	if len(s.Days) == 0 {
		return true
	}
	iso := isoDay(day)
	for _, d := range s.Days {
		if d == iso {
			return true
		}
	}
	return false
}

// NextSyncTime computes the next time the schedule should fire after prev.
// The second result is false when the schedule is disabled or cannot produce
// a next occurrence.
func (s *SyncSchedule) NextSyncTime(prev time.Time) (time.Time, bool) {
	if s == nil || !s.Enabled {
		return time.Time{}, false
	}

	if s.Time != "" {
		at, err := time.Parse("15:04", s.Time)
		if err != nil {
			return time.Time{}, false
		}
		next := time.Date(prev.Year(), prev.Month(), prev.Day(),
			at.Hour(), at.Minute(), 0, 0, prev.Location())
		if !next.After(prev) {
			next = next.AddDate(0, 0, 1)
		}
		// Walk forward to the next allowed weekday. Seven steps cover a
		// full week; beyond that no day is enabled.
		for i := 0; i < 7; i++ {
			if s.DayEnabled(next.Weekday()) {
				return next, true
			}
			next = next.AddDate(0, 0, 1)
		}
		return time.Time{}, false
	}

	if s.Interval <= 0 {
		return time.Time{}, false
	}
	next := prev.Add(time.Duration(s.Interval) * time.Minute)
	for i := 0; i < 7; i++ {
		if s.DayEnabled(next.Weekday()) {
			return next, true
		}
		next = time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0,
			next.Location()).AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

func isoDay(day time.Weekday) int {
	if day == time.Sunday {
		return 7
	}
	return int(day)
}
