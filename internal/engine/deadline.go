package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/observability"
	"go.uber.org/zap"
)

const (
	defaultScanInterval = 5 * time.Minute

	// Threshold tolerance windows. A window rather than a single
	// instant, because scan intervals are coarser than real time.
	warnWindowHigh = 24 * time.Hour
	warnWindowLow  = 23*time.Hour + 48*time.Minute
	critWindowHigh = 2 * time.Hour
	critWindowLow  = time.Hour + 48*time.Minute
)

// TaskSource feeds tracked task deadlines into the scanner.
type TaskSource interface {
	Deadlines(ctx context.Context) ([]domain.TaskDeadline, error)
}

// DeadlineScanner periodically computes hours remaining per task and
// emits at most one notification per threshold crossing. Firing is
// edge-triggered: each task/threshold pair fires once, no matter how
// many scans land inside the tolerance window.
type DeadlineScanner struct {
	engine   *Engine
	source   TaskSource
	logger   *zap.Logger
	metrics  *observability.Metrics
	interval time.Duration
	now      func() time.Time
	fired    map[string]struct{}
}

func NewDeadlineScanner(
	engine *Engine,
	source TaskSource,
	interval time.Duration,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*DeadlineScanner, error) {
	if engine == nil {
		return nil, fmt.Errorf("notification engine is required")
	}
	if source == nil {
		return nil, fmt.Errorf("task source is required")
	}
	if interval <= 0 {
		interval = defaultScanInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DeadlineScanner{
		engine:   engine,
		source:   source,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
		now:      time.Now,
		fired:    make(map[string]struct{}),
	}, nil
}

func (s *DeadlineScanner) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Run an initial scan so already-due deadlines do not wait for the
	// first ticker edge.
	if err := s.Scan(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("deadline scanner initial scan failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("deadline scan failed", zap.Error(err))
			}
		}
	}
}

// Scan evaluates every tracked deadline once.
func (s *DeadlineScanner) Scan(ctx context.Context) error {
	tasks, err := s.source.Deadlines(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch task deadlines: %w", err)
	}

	now := s.now()
	for i := range tasks {
		task := tasks[i]
		remaining := task.Deadline.Sub(now)

		switch {
		case remaining <= 0:
			s.fire(task, "overdue", Draft{
				Type:     domain.TypeError,
				Priority: domain.PriorityUrgent,
				Category: "task_deadline",
				Title:    "Görev gecikti",
				Message:  fmt.Sprintf("%q görevinin süresi doldu", task.Title),
				Data:     map[string]any{"taskId": task.ID},
			})

		case remaining > critWindowLow && remaining <= critWindowHigh:
			s.fire(task, "2h", Draft{
				Type:     domain.TypeWarning,
				Priority: domain.PriorityUrgent,
				Category: "task_deadline",
				Title:    "Kritik görev hatırlatması",
				Message:  fmt.Sprintf("%q görevine 2 saatten az kaldı", task.Title),
				Data:     map[string]any{"taskId": task.ID},
			})

		case remaining > warnWindowLow && remaining <= warnWindowHigh:
			s.fire(task, "24h", Draft{
				Type:     domain.TypeWarning,
				Priority: domain.PriorityHigh,
				Category: "task_deadline",
				Title:    "Görev hatırlatması",
				Message:  fmt.Sprintf("%q görevine 24 saat kaldı", task.Title),
				Data:     map[string]any{"taskId": task.ID},
			})
		}
	}

	return nil
}

func (s *DeadlineScanner) fire(task domain.TaskDeadline, threshold string, draft Draft) {
	key := task.ID + "|" + threshold
	if _, done := s.fired[key]; done {
		return
	}

	if _, err := s.engine.Add(draft); err != nil {
		s.logger.Error("failed to ingest deadline notification",
			zap.String("taskId", task.ID),
			zap.String("threshold", threshold),
			zap.Error(err),
		)
		return
	}

	s.fired[key] = struct{}{}
	s.metrics.IncDeadlineAlert(threshold)
	s.logger.Info("deadline alert fired",
		zap.String("taskId", task.ID),
		zap.String("threshold", threshold),
		zap.Time("deadline", task.Deadline),
	)
}
