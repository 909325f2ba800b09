package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/khangha1908/TodoX/internal/model"
	"github.com/khangha1908/TodoX/internal/repository"
)

// DueSoonWindow is how far ahead the reminder looks for due tasks.
const DueSoonWindow = 24 * time.Hour

// ReminderService finds tasks whose due date is closing in. It backs both
// the /tasks/due-soon endpoint and the periodic sweep.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
}

func NewReminderService(taskRepo *repository.TaskRepository, userRepo *repository.UserRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, userRepo: userRepo}
}

// DueSoon returns the user's active tasks due within the next 24 hours,
// soonest first.
func (s *ReminderService) DueSoon(ctx context.Context, userID uint, now time.Time) ([]model.Task, error) {
	return s.taskRepo.ListDueSoon(ctx, userID, now, now.Add(DueSoonWindow))
}

// SweepAll walks every user and logs how many tasks are coming due. Runs on
// the scheduler; failures for one user do not stop the sweep.
func (s *ReminderService) SweepAll(ctx context.Context, now time.Time) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, user := range users {
		tasks, err := s.DueSoon(ctx, user.ID, now)
		if err != nil {
			log.Printf("reminder sweep: user %d: %v", user.ID, err)
			continue
		}
		if len(tasks) == 0 {
			continue
		}
		log.Printf("reminder sweep: user %s has %d task(s) due within 24h", user.Username, len(tasks))
	}
	return nil
}
