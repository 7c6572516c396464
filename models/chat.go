package models

// ChatRequest is one inbound user turn.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

// ChatResponse is the assistant's reply to one turn.
type ChatResponse struct {
	Response         string `json:"response"`
	AvailableSlots   []Slot `json:"availableSlots"`
	BookingConfirmed bool   `json:"bookingConfirmed"`
	ConversationID   string `json:"conversationId"`
}

// ConversationDebug is a compact snapshot of a live conversation,
// served by the debug endpoint.
type ConversationDebug struct {
	Phase              Phase  `json:"phase"`
	LastIntent         Intent `json:"lastIntent,omitempty"`
	AvailableSlotCount int    `json:"availableSlotCount"`
	HasSelectedSlot    bool   `json:"hasSelectedSlot"`
	BookingConfirmed   bool   `json:"bookingConfirmed"`
	MessageCount       int    `json:"messageCount"`
}
