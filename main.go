package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointly/config"
	"appointly/cron"
	"appointly/database"
	"appointly/handlers"
	"appointly/middleware"
	"appointly/routes"
	"appointly/services/calendar"
	"appointly/services/conversation"
	"appointly/services/tasks"
	"appointly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Calendar backend.
	var calendarSvc calendar.Service
	var mongoClient *mongo.Client
	switch config.AppConfig.CalendarBackend {
	case "mongo":
		database.InitDB()
		mongoClient = database.MongoClient
		calendarSvc = calendar.NewMongoCalendar(mongoClient.Database(config.AppConfig.DatabaseName))
	default:
		mem := calendar.NewInMemoryCalendar()
		if config.AppConfig.SeedDemoAppointments {
			mem.SeedDemoAppointments(time.Now())
		}
		calendarSvc = mem
	}

	// Session store.
	var sessionStore conversation.SessionStore
	var redisClients []*redis.Client
	if config.AppConfig.SessionBackend == "redis" {
		client := utils.GetSessionCacheClient()
		redisClients = append(redisClients, client)
		ttl := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
		sessionStore = conversation.NewRedisSessionStore(client, ttl)
	} else {
		sessionStore = conversation.NewInMemorySessionStore()
	}

	// Appointment reminders.
	var reminders conversation.ReminderScheduler
	if config.AppConfig.RemindersEnabled {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		})
		defer asynqClient.Close()
		reminders = tasks.NewAsynqReminderScheduler(asynqClient, logger)
		cron.InitReminderWorker(logger)
	}

	conversationSvc := conversation.NewDefaultConversationService(calendarSvc, sessionStore, reminders, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	chatHandler := handlers.NewChatHandler(conversationSvc, sessionStore, logger)
	appointmentsHandler := handlers.NewAppointmentsHandler(calendarSvc, logger)
	routes.RegisterRoutes(router, chatHandler, appointmentsHandler)

	utils.StartHealthMonitor(redisClients, mongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
