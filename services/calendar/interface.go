package calendar

import (
	"context"
	"time"

	"appointly/models"
)

// Service defines the calendar backing the scheduling assistant: slot
// availability lookups plus appointment bookkeeping.
type Service interface {
	// Availability returns the open hourly slots inside the given window,
	// capped at MaxSlots. An empty result means no slots were found; it is
	// not an error.
	Availability(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Slot, error)

	// BookAppointment commits a new appointment of durationHours starting
	// at start. The slot is re-checked for conflicts at commit time; a
	// ConflictError is returned if another booking got there first.
	BookAppointment(ctx context.Context, title string, start time.Time, durationHours int) (*models.Appointment, error)

	// CancelAppointment removes the appointment with the given id and
	// returns it. Returns a NotFoundError for unknown ids.
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// ListAppointments returns all committed appointments in start order.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
}
