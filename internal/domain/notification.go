package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority represents the urgency of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ParsePriorityFromString(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: invalid priority %q", ErrValidation, s)
	}
	return p, nil
}

// Type represents the visual class of a notification.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeLoading Type = "loading"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo, TypeLoading:
		return true
	}
	return false
}

func ParseTypeFromString(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: invalid type %q", ErrValidation, s)
	}
	return t, nil
}

const MaxMessageLength = 2000

// Notification is the core entity held by the engine's collection.
// The collection is ordered newest-first; Timestamp and Priority never
// change after creation, Read is the only mutable field.
type Notification struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
	Priority  Priority       `json:"priority"`
	Type      Type           `json:"type"`
	Category  string         `json:"category,omitempty"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	ShowToast bool           `json:"showToast"`
}

func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("%w: title or message is required", ErrValidation)
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: invalid type %q", ErrValidation, n.Type)
	}
	if !n.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, n.Priority)
	}

	if len([]rune(n.Message)) > MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrValidation, MaxMessageLength)
	}

	return nil
}

// NewNotificationID builds a time-sortable identifier with a random
// tiebreak so two records created in the same millisecond stay distinct.
func NewNotificationID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
