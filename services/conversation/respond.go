package conversation

import (
	"fmt"
	"strings"

	"appointly/models"
)

const (
	noSlotsResponse = "Let me check availability for you. Please specify your preferred date and time."

	selectionFailedResponse = "I didn't find that slot. Please choose a number from the available options above."

	noSlotSelectedResponse = "Please select a time slot first before confirming."

	bookingFailedResponse = "❌ Sorry, there was an error booking your appointment. Please try again."

	helpResponse = "Hello! I'm here to help you book appointments. You can say things like:\n" +
		"- 'book meeting tomorrow'\n" +
		"- 'check availability next week'\n" +
		"- 'schedule call monday'"
)

func slotListResponse(slots []models.Slot) string {
	if len(slots) == 0 {
		return noSlotsResponse
	}

	var b strings.Builder
	b.WriteString("I found some available time slots for you:\n\n")
	for i, slot := range slots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, slot.Formatted)
	}
	b.WriteString("\nPlease select a slot by clicking the button or typing the number (e.g., '1' for the first slot).")
	return b.String()
}

func selectionResponse(slot models.Slot) string {
	return fmt.Sprintf("Perfect! You've selected: %s\n\nWould you like to confirm this booking? Click 'Confirm' or reply with 'yes'.", slot.Formatted)
}

func confirmationResponse(purpose string, slot models.Slot, appointmentID string) string {
	return fmt.Sprintf("✅ Booking confirmed! Your %s is scheduled for %s. Appointment ID: %s", purpose, slot.Formatted, appointmentID)
}
