package models

import "time"

// Appointment is a committed booking occupying a fixed time range.
// IDs are assigned sequentially at creation time and never reused,
// even after cancellation.
type Appointment struct {
	ID    string    `bson:"id" json:"id"`
	Title string    `bson:"title" json:"title"`
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Slot is a candidate one-hour booking window within business hours
// that does not conflict with any existing appointment.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Formatted string    `json:"formatted"`
}

// SlotTimeFormat renders a slot start like "Tuesday, June 10 at 09:00 AM".
const SlotTimeFormat = "Monday, January 02 at 03:04 PM"

// NewSlot builds a one-hour slot starting at start.
func NewSlot(start time.Time) Slot {
	return Slot{
		Start:     start,
		End:       start.Add(time.Hour),
		Formatted: start.Format(SlotTimeFormat),
	}
}
