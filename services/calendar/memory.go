package calendar

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"appointly/models"
)

// InMemoryCalendar keeps appointments in process memory. The appointment
// list is shared across every conversation, so all access goes through a
// single mutex: availability reads see a consistent list, and bookings
// from concurrent conversations cannot interleave.
type InMemoryCalendar struct {
	mu           sync.Mutex
	appointments []models.Appointment
	nextID       int
}

// NewInMemoryCalendar returns an empty calendar. IDs start at "1" and are
// monotonic; cancelled ids are never reused.
func NewInMemoryCalendar() *InMemoryCalendar {
	return &InMemoryCalendar{nextID: 1}
}

// SeedDemoAppointments pre-populates the calendar with two example
// appointments relative to now, mirroring the demo data set.
func (c *InMemoryCalendar) SeedDemoAppointments(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seeds := []models.Appointment{
		{Title: "Team Meeting", Start: now.Add(26 * time.Hour), End: now.Add(27 * time.Hour)},
		{Title: "Client Call", Start: now.Add(52 * time.Hour), End: now.Add(53 * time.Hour)},
	}
	for _, apt := range seeds {
		apt.ID = strconv.Itoa(c.nextID)
		c.nextID++
		c.appointments = append(c.appointments, apt)
	}
}

func (c *InMemoryCalendar) Availability(_ context.Context, windowStart, windowEnd time.Time) ([]models.Slot, error) {
	c.mu.Lock()
	busy := append([]models.Appointment(nil), c.appointments...)
	c.mu.Unlock()

	return AvailableSlots(windowStart, windowEnd, busy), nil
}

func (c *InMemoryCalendar) BookAppointment(_ context.Context, title string, start time.Time, durationHours int) (*models.Appointment, error) {
	if durationHours <= 0 {
		durationHours = 1
	}
	end := start.Add(time.Duration(durationHours) * time.Hour)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-validate under the lock: another conversation may have taken the
	// slot between the availability lookup and this commit.
	if overlapsAny(start, end, c.appointments) {
		return nil, &ConflictError{Start: start}
	}

	apt := models.Appointment{
		ID:    strconv.Itoa(c.nextID),
		Title: title,
		Start: start,
		End:   end,
	}
	c.nextID++
	c.appointments = append(c.appointments, apt)

	return &apt, nil
}

func (c *InMemoryCalendar) CancelAppointment(_ context.Context, id string) (*models.Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, apt := range c.appointments {
		if apt.ID == id {
			removed := apt
			c.appointments = append(c.appointments[:i], c.appointments[i+1:]...)
			return &removed, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

func (c *InMemoryCalendar) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	c.mu.Lock()
	out := append([]models.Appointment(nil), c.appointments...)
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
