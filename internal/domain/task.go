package domain

import "time"

// TaskStatus mirrors the states the task resource reports.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) String() string { return string(s) }

// TaskDeadline is the scheduling input for the deadline scanner. The
// scanner treats it as an external feed and never mutates it.
type TaskDeadline struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Deadline time.Time  `json:"deadline"`
	Priority Priority   `json:"priority"`
	Status   TaskStatus `json:"status"`
	Assignee string     `json:"assignee"`
}

// Record is a schemaless resource row as the heterogeneous backend
// endpoints return it.
type Record map[string]any
