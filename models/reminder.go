package models

import "time"

// ReminderPayload is the body of a scheduled appointment reminder task.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
}
