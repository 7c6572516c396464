package calendar

import (
	"time"

	"appointly/models"
)

const (
	// Business hours: slots may start at 09:00 up to (not including) 17:00.
	businessStartHour = 9
	businessEndHour   = 17

	// MaxSlots caps the number of slots returned by an availability lookup.
	MaxSlots = 10
)

// AvailableSlots walks the window in one-hour steps starting at windowStart
// and collects, in chronological order, every hour that starts within
// business hours on a weekday and does not overlap any busy appointment.
// The result is truncated to the first MaxSlots matches.
func AvailableSlots(windowStart, windowEnd time.Time, busy []models.Appointment) []models.Slot {
	var slots []models.Slot

	for current := windowStart; current.Before(windowEnd); current = current.Add(time.Hour) {
		if !withinBusinessHours(current) {
			continue
		}
		slotEnd := current.Add(time.Hour)
		if overlapsAny(current, slotEnd, busy) {
			continue
		}
		slots = append(slots, models.NewSlot(current))
		if len(slots) == MaxSlots {
			break
		}
	}

	return slots
}

func withinBusinessHours(t time.Time) bool {
	if t.Hour() < businessStartHour || t.Hour() >= businessEndHour {
		return false
	}
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

func overlapsAny(start, end time.Time, busy []models.Appointment) bool {
	for _, apt := range busy {
		// Open-interval overlap: [start,end) collides with [apt.Start,apt.End)
		// iff start < apt.End && end > apt.Start.
		if start.Before(apt.End) && end.After(apt.Start) {
			return true
		}
	}
	return false
}
