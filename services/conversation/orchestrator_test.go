package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"appointly/models"
	"appointly/services/calendar"

	"go.uber.org/zap"
)

// Monday, June 9, 2025 at noon; "tomorrow" resolves to Tuesday, June 10.
var monday = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultConversationService, *calendar.InMemoryCalendar, *InMemorySessionStore) {
	cal := calendar.NewInMemoryCalendar()
	store := NewInMemorySessionStore()
	svc := NewDefaultConversationService(cal, store, nil, zap.NewNop())
	svc.Now = func() time.Time { return monday }
	return svc, cal, store
}

func TestHandleMessage_BookingFlow(t *testing.T) {
	ctx := context.Background()
	svc, cal, store := newTestService()

	// Turn 1: the booking request lists tomorrow's slots.
	resp, err := svc.HandleMessage(ctx, "conv-1", "book meeting tomorrow")
	if err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	if len(resp.AvailableSlots) != 8 {
		t.Fatalf("expected 8 slots for an empty Tuesday, got %d", len(resp.AvailableSlots))
	}
	if !strings.Contains(resp.Response, "1. Tuesday, June 10 at 09:00 AM") {
		t.Fatalf("slot listing missing from response: %q", resp.Response)
	}
	if resp.BookingConfirmed {
		t.Fatal("bookingConfirmed must not be set before a commit")
	}
	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseAwaitingSlotSelection {
		t.Fatalf("expected phase %s, got %s", models.PhaseAwaitingSlotSelection, sess.Phase)
	}

	// Turn 2: a bare number selects the first slot.
	resp, err = svc.HandleMessage(ctx, "conv-1", "1")
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}
	if !strings.Contains(resp.Response, "You've selected: Tuesday, June 10 at 09:00 AM") {
		t.Fatalf("selection echo missing from response: %q", resp.Response)
	}
	sess, _ = store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseAwaitingConfirmation {
		t.Fatalf("expected phase %s, got %s", models.PhaseAwaitingConfirmation, sess.Phase)
	}
	if sess.SelectedSlot == nil || !sess.SelectedSlot.Start.Equal(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected selected slot: %+v", sess.SelectedSlot)
	}

	// Turn 3: confirmation commits the appointment.
	resp, err = svc.HandleMessage(ctx, "conv-1", "confirm")
	if err != nil {
		t.Fatalf("turn 3 failed: %v", err)
	}
	if !resp.BookingConfirmed {
		t.Fatal("expected bookingConfirmed after commit")
	}
	if !strings.Contains(resp.Response, "Appointment ID: 1") {
		t.Fatalf("confirmation missing appointment id: %q", resp.Response)
	}

	appts, _ := cal.ListAppointments(ctx)
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if appts[0].Title != "Scheduled Meeting" {
		t.Fatalf("unexpected appointment title %q", appts[0].Title)
	}

	sess, _ = store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseComplete {
		t.Fatalf("expected phase %s, got %s", models.PhaseComplete, sess.Phase)
	}
	if len(sess.AvailableSlots) != 0 || sess.SelectedSlot != nil {
		t.Fatal("slots and selection must be cleared after booking")
	}
	if sess.LastIntent != "" {
		t.Fatalf("lastIntent must be cleared after booking, got %s", sess.LastIntent)
	}
}

func TestHandleMessage_SelectionOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	if _, err := svc.HandleMessage(ctx, "conv-1", "book meeting tomorrow"); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}

	resp, err := svc.HandleMessage(ctx, "conv-1", "9")
	if err != nil {
		t.Fatalf("selection turn failed: %v", err)
	}
	if resp.Response != selectionFailedResponse {
		t.Fatalf("expected selection failure response, got %q", resp.Response)
	}

	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.SelectedSlot != nil {
		t.Fatal("out-of-range choice must not select a slot")
	}
	if sess.Phase != models.PhaseAwaitingSlotSelection {
		t.Fatalf("phase must be unchanged, got %s", sess.Phase)
	}
}

func TestHandleMessage_ConfirmWithoutSelection(t *testing.T) {
	ctx := context.Background()
	svc, cal, store := newTestService()

	sess := models.NewConversationSession("conv-1")
	sess.Phase = models.PhaseAwaitingConfirmation
	if err := store.Put(ctx, "conv-1", sess); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	resp, err := svc.HandleMessage(ctx, "conv-1", "confirm")
	if err != nil {
		t.Fatalf("confirm turn failed: %v", err)
	}
	if resp.Response != noSlotSelectedResponse {
		t.Fatalf("expected guidance response, got %q", resp.Response)
	}
	if resp.BookingConfirmed {
		t.Fatal("confirm without a selection must not set bookingConfirmed")
	}

	appts, _ := cal.ListAppointments(ctx)
	if len(appts) != 0 {
		t.Fatalf("confirm without a selection must not book, got %d appointments", len(appts))
	}
}

func TestHandleMessage_NumberAtInitialIsFallback(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	resp, err := svc.HandleMessage(ctx, "conv-1", "1")
	if err != nil {
		t.Fatalf("turn failed: %v", err)
	}
	if resp.Response != helpResponse {
		t.Fatalf("expected onboarding response, got %q", resp.Response)
	}
	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseInitial {
		t.Fatalf("expected phase %s, got %s", models.PhaseInitial, sess.Phase)
	}
}

func TestHandleMessage_GeneralInquiryResetsPhase(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	if _, err := svc.HandleMessage(ctx, "conv-1", "book meeting tomorrow"); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}
	if _, err := svc.HandleMessage(ctx, "conv-1", "hello there"); err != nil {
		t.Fatalf("inquiry turn failed: %v", err)
	}

	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseInitial {
		t.Fatalf("general inquiry must reset the phase, got %s", sess.Phase)
	}
}

func TestHandleMessage_PreferencesAccumulate(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	if _, err := svc.HandleMessage(ctx, "conv-1", "monday"); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	if _, err := svc.HandleMessage(ctx, "conv-1", "morning"); err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	sess, _ := store.GetOrCreate(ctx, "conv-1")
	want := models.Preferences{DatePreference: "monday", TimePreference: "morning"}
	if sess.Preferences != want {
		t.Fatalf("preferences = %+v, want %+v", sess.Preferences, want)
	}
}

func TestHandleMessage_ConflictAtCommit(t *testing.T) {
	ctx := context.Background()
	svc, cal, store := newTestService()

	if _, err := svc.HandleMessage(ctx, "conv-1", "book meeting tomorrow"); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}
	if _, err := svc.HandleMessage(ctx, "conv-1", "1"); err != nil {
		t.Fatalf("selection turn failed: %v", err)
	}

	// Another conversation grabs the same hour before our confirmation.
	slotStart := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	if _, err := cal.BookAppointment(ctx, "Scheduled Call", slotStart, 1); err != nil {
		t.Fatalf("competing booking failed: %v", err)
	}

	resp, err := svc.HandleMessage(ctx, "conv-1", "confirm")
	if err != nil {
		t.Fatalf("confirm turn failed: %v", err)
	}
	if resp.Response != bookingFailedResponse {
		t.Fatalf("expected booking failure response, got %q", resp.Response)
	}
	if resp.BookingConfirmed {
		t.Fatal("a conflicting commit must not set bookingConfirmed")
	}

	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseAwaitingConfirmation {
		t.Fatalf("conversation should stay in confirmation phase, got %s", sess.Phase)
	}
}

// failingCalendar breaks every availability lookup.
type failingCalendar struct {
	calendar.Service
}

func (f *failingCalendar) Availability(context.Context, time.Time, time.Time) ([]models.Slot, error) {
	return nil, errors.New("backend down")
}

func TestHandleMessage_FailedTurnLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySessionStore()
	svc := NewDefaultConversationService(&failingCalendar{}, store, nil, zap.NewNop())
	svc.Now = func() time.Time { return monday }

	if _, err := svc.HandleMessage(ctx, "conv-1", "book meeting tomorrow"); err == nil {
		t.Fatal("expected the turn to fail")
	}

	sess, _ := store.GetOrCreate(ctx, "conv-1")
	if sess.Phase != models.PhaseInitial || len(sess.History) != 0 {
		t.Fatalf("failed turn must not persist mutations: %+v", sess)
	}
}
