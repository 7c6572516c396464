package nlu

import (
	"testing"
	"time"
)

// Wednesday, June 11, 2025 at 15:04 local.
var wednesday = time.Date(2025, 6, 11, 15, 4, 0, 0, time.UTC)

func TestResolveWindow_Tomorrow(t *testing.T) {
	start, end := ResolveWindow("tomorrow", wednesday)

	wantStart := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 6, 12, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Fatalf("got [%s, %s], want [%s, %s]", start, end, wantStart, wantEnd)
	}
}

func TestResolveWindow_NextWeek(t *testing.T) {
	start, end := ResolveWindow("next_week", wednesday)

	// Coming Monday through Friday.
	wantStart := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 6, 20, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Fatalf("got [%s, %s], want [%s, %s]", start, end, wantStart, wantEnd)
	}
	if start.Weekday() != time.Monday {
		t.Fatalf("next_week must start on Monday, got %s", start.Weekday())
	}
}

func TestResolveWindow_WeekdayName(t *testing.T) {
	start, end := ResolveWindow("friday", wednesday)

	wantStart := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("got start %s, want %s", start, wantStart)
	}
	if end.Day() != 13 || end.Hour() != 17 {
		t.Fatalf("got end %s, want same day 17:00", end)
	}
}

func TestResolveWindow_SameWeekdayRollsAWeek(t *testing.T) {
	start, _ := ResolveWindow("wednesday", wednesday)

	wantStart := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("got start %s, want next week's Wednesday %s", start, wantStart)
	}
}

func TestResolveWindow_Default(t *testing.T) {
	start, end := ResolveWindow("", wednesday)

	wantStart := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 6, 14, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Fatalf("got [%s, %s], want [%s, %s]", start, end, wantStart, wantEnd)
	}
}
