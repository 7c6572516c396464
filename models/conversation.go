package models

// Phase is the disambiguation context of a conversation. It determines how
// terse replies like a bare number or "yes" are interpreted.
type Phase string

const (
	PhaseInitial               Phase = "initial"
	PhaseAwaitingSlotSelection Phase = "awaiting_slot_selection"
	PhaseAwaitingConfirmation  Phase = "awaiting_confirmation"
	PhaseComplete              Phase = "booking_complete"
)

// Intent is the coarse action category inferred from one utterance.
type Intent string

const (
	IntentSelectSlot        Intent = "select_slot"
	IntentConfirmBooking    Intent = "confirm_booking"
	IntentBookAppointment   Intent = "book_appointment"
	IntentCheckAvailability Intent = "check_availability"
	IntentModifyBooking     Intent = "modify_booking"
	IntentGeneralInquiry    Intent = "general_inquiry"
)

// Speaker identifies who produced a conversation turn.
const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)

// Turn is one utterance in a conversation history.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Preferences is the scheduling information extracted from user text,
// accumulated additively across turns: a newly extracted non-empty field
// overwrites the old value, untouched fields persist.
type Preferences struct {
	DatePreference string `json:"datePreference,omitempty"`
	TimePreference string `json:"timePreference,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
}

// Merge folds newly extracted preferences into p.
func (p *Preferences) Merge(extracted Preferences) {
	if extracted.DatePreference != "" {
		p.DatePreference = extracted.DatePreference
	}
	if extracted.TimePreference != "" {
		p.TimePreference = extracted.TimePreference
	}
	if extracted.Purpose != "" {
		p.Purpose = extracted.Purpose
	}
}

// ConversationSession holds the dialogue state for one conversation id.
type ConversationSession struct {
	ConversationID   string      `json:"conversationId"`
	History          []Turn      `json:"history"`
	Phase            Phase       `json:"phase"`
	LastIntent       Intent      `json:"lastIntent,omitempty"`
	Preferences      Preferences `json:"preferences"`
	AvailableSlots   []Slot      `json:"availableSlots,omitempty"`
	SelectedSlot     *Slot       `json:"selectedSlot,omitempty"`
	BookingConfirmed bool        `json:"bookingConfirmed"`
}

// NewConversationSession returns a fresh session in the initial phase.
func NewConversationSession(conversationID string) *ConversationSession {
	return &ConversationSession{
		ConversationID: conversationID,
		Phase:          PhaseInitial,
	}
}

// Clone returns a deep copy of the session. The orchestrator mutates a
// clone and persists it only when the whole turn succeeds, so a failed
// turn leaves the stored session untouched.
func (s *ConversationSession) Clone() *ConversationSession {
	out := *s
	out.History = append([]Turn(nil), s.History...)
	out.AvailableSlots = append([]Slot(nil), s.AvailableSlots...)
	if s.SelectedSlot != nil {
		slot := *s.SelectedSlot
		out.SelectedSlot = &slot
	}
	return &out
}
