package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"appointly/models"
	"appointly/services/calendar"
	"appointly/services/nlu"

	"go.uber.org/zap"
)

// Service drives one conversation turn: classify the utterance's intent,
// route to an availability lookup, slot selection or booking confirmation,
// and produce the assistant reply.
type Service interface {
	HandleMessage(ctx context.Context, conversationID, text string) (*models.ChatResponse, error)
	ResetConversation(ctx context.Context, conversationID string) error
}

// ReminderScheduler schedules a reminder for a committed appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, apt models.Appointment) error
}

// DefaultConversationService implements Service.
type DefaultConversationService struct {
	Calendar  calendar.Service
	Sessions  SessionStore
	Reminders ReminderScheduler // optional
	Logger    *zap.Logger

	// Now is the clock used for window resolution; tests override it.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDefaultConversationService(cal calendar.Service, sessions SessionStore, reminders ReminderScheduler, logger *zap.Logger) *DefaultConversationService {
	return &DefaultConversationService{
		Calendar:  cal,
		Sessions:  sessions,
		Reminders: reminders,
		Logger:    logger,
		Now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// conversationLock returns the mutex serializing turns for one
// conversation id. Phase and preferences accumulate statefully, so turns
// on the same conversation must apply strictly in arrival order; turns on
// different conversations run in parallel.
func (s *DefaultConversationService) conversationLock(conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}

// HandleMessage applies one inbound utterance to its conversation. All
// session mutations happen on a clone that is persisted only when the turn
// succeeds; a failing turn leaves the stored session exactly as it was.
func (s *DefaultConversationService) HandleMessage(ctx context.Context, conversationID, text string) (*models.ChatResponse, error) {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := s.Sessions.GetOrCreate(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation session: %w", err)
	}
	sess := stored.Clone()
	sess.History = append(sess.History, models.Turn{Speaker: models.SpeakerUser, Text: text})

	intent := nlu.ClassifyIntent(text, sess.Phase)
	sess.Preferences.Merge(nlu.ExtractPreferences(text))
	sess.LastIntent = intent

	s.Logger.Debug("conversation turn",
		zap.String("conversationId", conversationID),
		zap.String("intent", string(intent)),
		zap.String("phase", string(sess.Phase)))

	var response string
	switch intent {
	case models.IntentBookAppointment, models.IntentCheckAvailability:
		response, err = s.handleAvailability(ctx, sess)
		if err != nil {
			return nil, err
		}

	case models.IntentSelectSlot:
		response = s.handleSlotSelection(sess, text)

	case models.IntentConfirmBooking:
		response, err = s.handleConfirmation(ctx, sess)
		if err != nil {
			return nil, err
		}

	default:
		// General inquiries reset the conversation to the initial phase.
		// ModifyBooking is classified but not wired to an action yet, so it
		// takes the same fallback path.
		sess.Phase = models.PhaseInitial
		response = helpResponse
	}

	sess.History = append(sess.History, models.Turn{Speaker: models.SpeakerAssistant, Text: response})

	if err := s.Sessions.Put(ctx, conversationID, sess); err != nil {
		return nil, fmt.Errorf("failed to persist conversation session: %w", err)
	}

	slots := sess.AvailableSlots
	if slots == nil {
		slots = []models.Slot{}
	}
	return &models.ChatResponse{
		Response:         response,
		AvailableSlots:   slots,
		BookingConfirmed: sess.BookingConfirmed,
		ConversationID:   conversationID,
	}, nil
}

func (s *DefaultConversationService) handleAvailability(ctx context.Context, sess *models.ConversationSession) (string, error) {
	windowStart, windowEnd := nlu.ResolveWindow(sess.Preferences.DatePreference, s.Now())

	slots, err := s.Calendar.Availability(ctx, windowStart, windowEnd)
	if err != nil {
		return "", fmt.Errorf("failed to compute availability: %w", err)
	}

	sess.AvailableSlots = slots
	// The phase advances even when no slots were found: the lookup itself
	// succeeded and the user's next number would refer to this (empty) list.
	sess.Phase = models.PhaseAwaitingSlotSelection

	return slotListResponse(slots), nil
}

func (s *DefaultConversationService) handleSlotSelection(sess *models.ConversationSession, text string) string {
	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		// Malformed selection is recovered locally as "no selection made".
		return selectionFailedResponse
	}
	if choice < 1 || choice > len(sess.AvailableSlots) {
		return selectionFailedResponse
	}

	selected := sess.AvailableSlots[choice-1]
	sess.SelectedSlot = &selected
	sess.Phase = models.PhaseAwaitingConfirmation

	return selectionResponse(selected)
}

func (s *DefaultConversationService) handleConfirmation(ctx context.Context, sess *models.ConversationSession) (string, error) {
	if sess.SelectedSlot == nil {
		return noSlotSelectedResponse, nil
	}

	purpose := sess.Preferences.Purpose
	if purpose == "" {
		purpose = "meeting"
	}
	title := "Scheduled " + titleCase(purpose)
	slot := *sess.SelectedSlot

	apt, err := s.Calendar.BookAppointment(ctx, title, slot.Start, 1)
	if err != nil {
		var conflict *calendar.ConflictError
		if errors.As(err, &conflict) {
			// Another conversation took the slot between the lookup and
			// this commit. Not a fault; the user just has to pick again.
			s.Logger.Warn("booking conflict at commit",
				zap.String("conversationId", sess.ConversationID),
				zap.Time("slotStart", slot.Start))
			return bookingFailedResponse, nil
		}
		return "", fmt.Errorf("failed to book appointment: %w", err)
	}

	sess.BookingConfirmed = true
	sess.AvailableSlots = nil
	sess.SelectedSlot = nil
	sess.LastIntent = ""
	sess.Phase = models.PhaseComplete

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *apt); err != nil {
			// A reminder failure must never fail the booking turn.
			s.Logger.Warn("failed to schedule reminder",
				zap.String("appointmentId", apt.ID), zap.Error(err))
		}
	}

	return confirmationResponse(purpose, slot, apt.ID), nil
}

// ResetConversation discards all state for a conversation id.
func (s *DefaultConversationService) ResetConversation(ctx context.Context, conversationID string) error {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	return s.Sessions.Reset(ctx, conversationID)
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
