// Package darvas computes the date windows and derived metrics behind the
// ticker dashboard.
package darvas

import "time"

// pyWeekday maps a weekday to the 0=Monday..6=Sunday convention the week
// formula is written in (time.Weekday counts 0=Sunday..6=Saturday).
func pyWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// dateOnly truncates a timestamp to local midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekWindow returns the most recently completed Friday-to-Thursday trading
// week relative to today. The anchor is the last Friday on or before today:
//
//	lastFriday = today - ((weekday(today) + 3) mod 7) days
//
// with weekday 0=Monday..6=Sunday. The window runs from lastFriday-7 to
// lastFriday-1, so end is always a Thursday and end == start+6 days. The
// modular anchor is load-bearing; keep it exactly as written.
func WeekWindow(today time.Time) (start, end time.Time) {
	today = dateOnly(today)
	lastFriday := today.AddDate(0, 0, -((pyWeekday(today) + 3) % 7))
	end = lastFriday.AddDate(0, 0, -1)
	start = lastFriday.AddDate(0, 0, -7)
	return start, end
}

// YearWindow returns the trailing 365 calendar days ending today.
func YearWindow(today time.Time) (start, end time.Time) {
	today = dateOnly(today)
	return today.AddDate(0, 0, -365), today
}
