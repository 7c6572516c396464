package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemoryCalendar_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	cal := NewInMemoryCalendar()
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	first, err := cal.BookAppointment(ctx, "Scheduled Meeting", start, 1)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	second, err := cal.BookAppointment(ctx, "Scheduled Call", start.Add(2*time.Hour), 1)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if first.ID != "1" || second.ID != "2" {
		t.Fatalf("expected ids 1 and 2, got %s and %s", first.ID, second.ID)
	}

	// Cancelled ids are never reused.
	if _, err := cal.CancelAppointment(ctx, first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	third, err := cal.BookAppointment(ctx, "Scheduled Demo", start.Add(4*time.Hour), 1)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if third.ID != "3" {
		t.Fatalf("expected id 3 after cancellation, got %s", third.ID)
	}
}

func TestInMemoryCalendar_ConflictAtCommit(t *testing.T) {
	ctx := context.Background()
	cal := NewInMemoryCalendar()
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	if _, err := cal.BookAppointment(ctx, "Scheduled Meeting", start, 1); err != nil {
		t.Fatalf("book failed: %v", err)
	}

	_, err := cal.BookAppointment(ctx, "Scheduled Call", start, 1)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	appts, _ := cal.ListAppointments(ctx)
	if len(appts) != 1 {
		t.Fatalf("conflicting booking must not be committed, have %d appointments", len(appts))
	}
}

func TestInMemoryCalendar_CancelUnknown(t *testing.T) {
	ctx := context.Background()
	cal := NewInMemoryCalendar()
	cal.SeedDemoAppointments(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))

	_, err := cal.CancelAppointment(ctx, "42")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	appts, _ := cal.ListAppointments(ctx)
	if len(appts) != 2 {
		t.Fatalf("failed cancel must not mutate the calendar, have %d appointments", len(appts))
	}
}

func TestInMemoryCalendar_CancelRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	cal := NewInMemoryCalendar()
	cal.SeedDemoAppointments(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))

	removed, err := cal.CancelAppointment(ctx, "1")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if removed.ID != "1" || removed.Title != "Team Meeting" {
		t.Fatalf("unexpected removed appointment: %+v", removed)
	}

	appts, _ := cal.ListAppointments(ctx)
	if len(appts) != 1 {
		t.Fatalf("expected 1 remaining appointment, got %d", len(appts))
	}
	if appts[0].ID != "2" {
		t.Fatalf("expected appointment 2 to remain, got %s", appts[0].ID)
	}
}

func TestInMemoryCalendar_DefaultDuration(t *testing.T) {
	ctx := context.Background()
	cal := NewInMemoryCalendar()
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	apt, err := cal.BookAppointment(ctx, "Scheduled Meeting", start, 0)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if !apt.End.Equal(start.Add(time.Hour)) {
		t.Fatalf("expected default one-hour duration, got end %s", apt.End.Format(time.RFC3339))
	}
}
