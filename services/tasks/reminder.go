package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"appointly/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLeadTime is how long before the appointment start the reminder fires.
const reminderLeadTime = time.Hour

// NewReminderTask builds the asynq task for one appointment reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues a reminder task an hour before each
// booked appointment starts.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqReminderScheduler(client *asynq.Client, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Logger: logger}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, apt models.Appointment) error {
	payload := models.ReminderPayload{
		AppointmentID: apt.ID,
		Title:         apt.Title,
		Start:         apt.Start,
	}
	task, opts, err := NewReminderTask(payload, apt.Start.Add(-reminderLeadTime))
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}

	s.Logger.Debug("reminder scheduled",
		zap.String("appointmentId", apt.ID),
		zap.String("taskId", info.ID))
	return nil
}
