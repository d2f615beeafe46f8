package darvas

import (
	"testing"
	"time"
)

func TestWeekWindow_EveryWeekday(t *testing.T) {
	// One test date per weekday, anchored around Fri 2026-08-21.
	tests := []struct {
		name      string
		today     string
		wantStart string
		wantEnd   string
	}{
		{"Monday", "2026-08-24", "2026-08-14", "2026-08-20"},
		{"Tuesday", "2026-08-25", "2026-08-14", "2026-08-20"},
		{"Wednesday", "2026-08-26", "2026-08-14", "2026-08-20"},
		{"Thursday", "2026-08-27", "2026-08-14", "2026-08-20"},
		// On a Friday the anchor is today itself
		{"Friday", "2026-08-28", "2026-08-21", "2026-08-27"},
		{"Saturday", "2026-08-29", "2026-08-21", "2026-08-27"},
		{"Sunday", "2026-08-30", "2026-08-21", "2026-08-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, _ := time.Parse("2006-01-02", tt.today)
			if today.Weekday().String() != tt.name {
				t.Fatalf("test fixture broken: %s is a %s", tt.today, today.Weekday())
			}

			start, end := WeekWindow(today)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestWeekWindow_Properties(t *testing.T) {
	// For any date: end is a Thursday and end == start+6 days.
	day := time.Date(2025, 1, 1, 15, 30, 0, 0, time.Local)
	for i := 0; i < 400; i++ {
		start, end := WeekWindow(day)

		if end.Weekday() != time.Thursday {
			t.Fatalf("end of window for %s is %s, want Thursday", day.Format("2006-01-02"), end.Weekday())
		}
		if !end.Equal(start.AddDate(0, 0, 6)) {
			t.Fatalf("window for %s is not 7 days: %s .. %s", day.Format("2006-01-02"), start, end)
		}
		if !end.Before(day.AddDate(0, 0, 1)) {
			t.Fatalf("window end %s is in the future of %s", end, day)
		}

		day = day.AddDate(0, 0, 1)
	}
}

func TestWeekWindow_TruncatesTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 8, 24, 1, 0, 0, 0, time.Local)
	evening := time.Date(2026, 8, 24, 23, 59, 0, 0, time.Local)

	s1, e1 := WeekWindow(morning)
	s2, e2 := WeekWindow(evening)
	if !s1.Equal(s2) || !e1.Equal(e2) {
		t.Error("window must not depend on time of day")
	}
}

func TestYearWindow(t *testing.T) {
	today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	start, end := YearWindow(today)

	if !end.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)) {
		t.Errorf("end = %s, want today at midnight", end)
	}
	if !start.Equal(end.AddDate(0, 0, -365)) {
		t.Errorf("start = %s, want end-365d", start)
	}
}
