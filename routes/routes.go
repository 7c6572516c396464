package routes

import (
	"time"

	"appointly/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, h *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.POST("", h.HandleChat)
		api.POST("/reset/:conversationID", h.ResetConversation)
	}

	// Debug view of live conversations.
	r.GET("/api/debug/conversations", h.DebugConversations)
}

// RegisterAppointmentRoutes registers the committed-appointment endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentsHandler) {
	api := r.Group("/api/appointments")
	{
		api.GET("", h.ListAppointments)
		api.DELETE("/:id", h.CancelAppointment)
	}
}

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, appointments *handlers.AppointmentsHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, chat)
	RegisterAppointmentRoutes(r, appointments)
	RegisterHealthRoute(r)
}
