package service

import (
	"context"
	"time"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"go.uber.org/zap"
)

// TaskService adds task-specific helpers and is the deadline feed for
// the notification engine's scanner.
type TaskService struct {
	*Service
}

func NewTaskService(client Requester, fixtures *fixture.Provider, logger *zap.Logger) (*TaskService, error) {
	base, err := NewService("tasks", client, fixtures, logger)
	if err != nil {
		return nil, err
	}
	return &TaskService{Service: base}, nil
}

func (s *TaskService) ByStatus(ctx context.Context, status string) ([]domain.Record, error) {
	return s.filterByField(ctx, "status", status)
}

func (s *TaskService) ByAssignee(ctx context.Context, assignee string) ([]domain.Record, error) {
	return s.filterByField(ctx, "assignee", assignee)
}

// Deadlines converts the task records into the scanner's scheduling
// input. Completed tasks and records without a parseable deadline are
// skipped rather than failing the whole feed.
func (s *TaskService) Deadlines(ctx context.Context) ([]domain.TaskDeadline, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	deadlines := make([]domain.TaskDeadline, 0, len(records))
	for _, rec := range records {
		status, _ := rec["status"].(string)
		if domain.TaskStatus(status) == domain.TaskStatusCompleted {
			continue
		}

		rawDeadline, _ := rec["deadline"].(string)
		deadline, err := time.Parse(time.RFC3339, rawDeadline)
		if err != nil {
			continue
		}

		priority := domain.PriorityMedium
		if parsed, err := domain.ParsePriorityFromString(stringField(rec, "priority")); err == nil {
			priority = parsed
		}

		deadlines = append(deadlines, domain.TaskDeadline{
			ID:       stringField(rec, "id"),
			Title:    stringField(rec, "title"),
			Deadline: deadline,
			Priority: priority,
			Status:   domain.TaskStatus(status),
			Assignee: stringField(rec, "assignee"),
		})
	}

	return deadlines, nil
}

func stringField(rec domain.Record, key string) string {
	v, _ := rec[key].(string)
	return v
}
