package nlu

import "time"

const (
	dayStartHour = 9
	dayEndHour   = 17
)

var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// ResolveWindow turns a date preference into the concrete (start, end)
// window for an availability search, relative to now.
//
//   - "tomorrow": tomorrow 09:00 through the same day 17:00
//   - "next_week": the coming Monday 09:00 through Friday 17:00
//   - a weekday name: its next future occurrence 09:00 through 17:00
//     (if today is that weekday, roll to next week)
//   - anything else: tomorrow 09:00 through two days later 17:00
func ResolveWindow(preference string, now time.Time) (time.Time, time.Time) {
	switch {
	case preference == "tomorrow":
		start := atHour(now.AddDate(0, 0, 1), dayStartHour)
		return start, atHour(start, dayEndHour)

	case preference == "next_week":
		daysAhead := 7 - mondayBasedWeekday(now)
		start := atHour(now.AddDate(0, 0, daysAhead), dayStartHour)
		return start, atHour(start.AddDate(0, 0, 4), dayEndHour)

	case isWeekdayName(preference):
		daysAhead := weekdayIndex[preference] - mondayBasedWeekday(now)
		if daysAhead <= 0 {
			daysAhead += 7
		}
		start := atHour(now.AddDate(0, 0, daysAhead), dayStartHour)
		return start, atHour(start, dayEndHour)

	default:
		start := atHour(now.AddDate(0, 0, 1), dayStartHour)
		return start, atHour(start.AddDate(0, 0, 2), dayEndHour)
	}
}

func isWeekdayName(s string) bool {
	_, ok := weekdayIndex[s]
	return ok
}

// mondayBasedWeekday maps time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func mondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
