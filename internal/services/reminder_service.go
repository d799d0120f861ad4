package services

import (
	"context"
	"log"
	"time"

	"taskhub/internal/repositories"
)

const reminderBatchLimit = 50

// ReminderService periodically scans for tasks whose due date falls inside
// the configured window and notifies the owner by email and telegram. Each
// task is reminded at most once.
type ReminderService struct {
	tasks    repositories.TaskRepository
	users    repositories.UserRepository
	email    EmailService
	telegram *TelegramService
	window   time.Duration
	interval time.Duration
}

func NewReminderService(
	tasks repositories.TaskRepository,
	users repositories.UserRepository,
	email EmailService,
	telegram *TelegramService,
	window, interval time.Duration,
) *ReminderService {
	if window <= 0 {
		window = 24 * time.Hour
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ReminderService{
		tasks:    tasks,
		users:    users,
		email:    email,
		telegram: telegram,
		window:   window,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled, firing one scan per interval.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *ReminderService) scan(ctx context.Context) {
	tasks, err := s.tasks.ListDueWithin(ctx, s.window, reminderBatchLimit)
	if err != nil {
		log.Printf("[reminder][scan][err] %v", err)
		return
	}
	for i := range tasks {
		task := &tasks[i]

		owner, err := s.users.GetByID(ctx, task.UserID)
		if err != nil || owner == nil {
			log.Printf("[reminder][skip] task=%d owner=%d err=%v", task.ID, task.UserID, err)
			continue
		}

		if s.email != nil {
			if err := s.email.SendDueTaskReminder(owner.Email, task); err != nil {
				log.Printf("[reminder][email][err] task=%d: %v", task.ID, err)
			}
		}
		if owner.NotifyTelegram && owner.TelegramChatID != nil {
			_ = s.telegram.NotifyTask(*owner.TelegramChatID, "⏰ Tarefa perto do vencimento", task)
		}

		if err := s.tasks.SetReminderSent(ctx, task.ID); err != nil {
			log.Printf("[reminder][mark][err] task=%d: %v", task.ID, err)
		}
	}
}
