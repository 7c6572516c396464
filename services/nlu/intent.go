package nlu

import (
	"strconv"
	"strings"

	"appointly/models"
)

// intentRule pairs a predicate with the intent it yields. The rule order
// is the tie-break policy: rules are evaluated in sequence and the first
// match wins.
type intentRule struct {
	intent  models.Intent
	matches func(text string, phase models.Phase) bool
}

var (
	confirmWords      = []string{"confirm", "yes", "sounds good", "that works", "book it", "ok"}
	bookingWords      = []string{"book", "schedule", "appointment", "meeting"}
	availabilityWords = []string{"available", "free", "slots", "times", "check availability", "show me"}
	modifyWords       = []string{"cancel", "change", "reschedule"}
)

var intentRules = []intentRule{
	// A bare number only means slot selection while a slot list is on the
	// table; otherwise "1" inside free text must not be misread.
	{models.IntentSelectSlot, func(text string, phase models.Phase) bool {
		return phase == models.PhaseAwaitingSlotSelection && isSlotNumber(text)
	}},
	// Likewise "yes"/"ok" only confirm when a confirmation is pending.
	{models.IntentConfirmBooking, func(text string, phase models.Phase) bool {
		return phase == models.PhaseAwaitingConfirmation && containsAny(text, confirmWords)
	}},
	{models.IntentBookAppointment, func(text string, _ models.Phase) bool {
		return containsAny(text, bookingWords)
	}},
	{models.IntentCheckAvailability, func(text string, _ models.Phase) bool {
		return containsAny(text, availabilityWords)
	}},
	{models.IntentModifyBooking, func(text string, _ models.Phase) bool {
		return containsAny(text, modifyWords)
	}},
}

// ClassifyIntent maps one utterance to a coarse intent, using the current
// conversation phase to disambiguate terse replies.
func ClassifyIntent(text string, phase models.Phase) models.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range intentRules {
		if rule.matches(normalized, phase) {
			return rule.intent
		}
	}
	return models.IntentGeneralInquiry
}

// isSlotNumber reports whether text is exactly one of the literal digits
// "1" through "10".
func isSlotNumber(text string) bool {
	for i := 1; i <= 10; i++ {
		if text == strconv.Itoa(i) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
