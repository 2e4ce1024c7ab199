package domain

import "time"

// dateLayout matches the calendar-day key persisted with stats
const dateLayout = "Mon Jan 02 2006"

// Stats are the aggregate focus counters
type Stats struct {
	CompletedPomodoros int    `json:"completedPomodoros"`
	TotalTime          int    `json:"totalTime"` // minutes
	CurrentStreak      int    `json:"currentStreak"`
	TodayPomodoros     int    `json:"todayPomodoros"`
	LastDate           string `json:"lastDate"`
}

// DateKey returns the calendar-day key for t in its own location
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// NewStats returns zeroed stats stamped with today's date
func NewStats(now time.Time) Stats {
	return Stats{LastDate: DateKey(now)}
}

// RecordFocus counts one completed focus session of the given length
func (s *Stats) RecordFocus(minutes int) {
	s.CompletedPomodoros++
	s.CurrentStreak++
	s.TodayPomodoros++
	s.TotalTime += minutes
}

// ResetIfNewDay zeroes today's count when the stored day differs from today.
// Other counters are left untouched. Reports whether a reset happened.
func (s *Stats) ResetIfNewDay(today string) bool {
	if s.LastDate == today {
		return false
	}
	s.TodayPomodoros = 0
	s.LastDate = today
	return true
}
