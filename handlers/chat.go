package handlers

import (
	"net/http"

	"appointly/models"
	"appointly/services/conversation"
	"appointly/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	Service conversation.Service
	Store   conversation.SessionStore
	Logger  *zap.Logger
}

func NewChatHandler(svc conversation.Service, store conversation.SessionStore, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: svc, Store: store, Logger: logger}
}

// HandleChat applies one user message to its conversation and returns the
// assistant reply. A missing conversation id starts a new conversation.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	resp, err := h.Service.HandleMessage(c.Request.Context(), conversationID, req.Message)
	if err != nil {
		h.Logger.Error("chat turn failed",
			zap.String("conversationId", conversationID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetConversation discards all state for a conversation id.
func (h *ChatHandler) ResetConversation(c *gin.Context) {
	conversationID := c.Param("conversationID")

	if err := h.Service.ResetConversation(c.Request.Context(), conversationID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to reset conversation", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation " + conversationID + " reset"})
}

// DebugConversations exposes a compact snapshot of live conversations.
// Only available on stores that keep sessions in process memory.
func (h *ChatHandler) DebugConversations(c *gin.Context) {
	snapshotter, ok := h.Store.(conversation.Snapshotter)
	if !ok {
		utils.JSONError(c, http.StatusNotImplemented, "conversation snapshot unavailable", "session store does not support enumeration")
		return
	}

	snapshot, err := snapshotter.Snapshot(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to snapshot conversations", err.Error())
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
