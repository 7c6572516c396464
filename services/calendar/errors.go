package calendar

import (
	"fmt"
	"time"
)

// NotFoundError reports an operation against an unknown appointment id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFound: appointment %q not found", e.ID)
}

// ConflictError reports a booking attempt that overlaps an appointment
// committed since the slot was offered.
type ConflictError struct {
	Start time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: slot starting %s is no longer available", e.Start.Format(time.RFC3339))
}
