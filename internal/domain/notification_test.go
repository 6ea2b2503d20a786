package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParsePriorityFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{name: "valid lowercase", input: "urgent", want: PriorityUrgent},
		{name: "valid uppercase with spaces", input: " HIGH ", want: PriorityHigh},
		{name: "invalid", input: "critical", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePriorityFromString(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("ParsePriorityFromString() error = %v, want ErrValidation", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePriorityFromString() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParsePriorityFromString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseTypeFromString(t *testing.T) {
	t.Parallel()

	got, err := ParseTypeFromString(" Warning ")
	if err != nil {
		t.Fatalf("ParseTypeFromString() unexpected error = %v", err)
	}
	if got != TypeWarning {
		t.Fatalf("ParseTypeFromString() = %s, want %s", got, TypeWarning)
	}

	_, err = ParseTypeFromString("fatal")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ParseTypeFromString() error = %v, want ErrValidation", err)
	}
}

func TestNotificationValidate(t *testing.T) {
	t.Parallel()

	valid := Notification{
		Type:     TypeSuccess,
		Priority: PriorityMedium,
		Title:    "Bağış alındı",
		Message:  "500 TL bağış kaydedildi",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(n *Notification)
	}{
		{name: "empty title and message", mutate: func(n *Notification) { n.Title, n.Message = "", " " }},
		{name: "invalid type", mutate: func(n *Notification) { n.Type = "boom" }},
		{name: "invalid priority", mutate: func(n *Notification) { n.Priority = "critical" }},
		{name: "message overflow", mutate: func(n *Notification) { n.Message = strings.Repeat("a", MaxMessageLength+1) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := valid
			tt.mutate(&n)
			if err := n.Validate(); !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNewNotificationID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewNotificationID(now)
		if !strings.HasPrefix(id, "1772359200000-") {
			t.Fatalf("id = %q, want millisecond prefix 1772359200000-", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSettingsApply(t *testing.T) {
	t.Parallel()

	base := DefaultSettings()

	enabled := true
	timeout := 30 * time.Second
	next, err := base.Apply(SettingsPatch{EnableDesktop: &enabled, ReadTimeout: &timeout})
	if err != nil {
		t.Fatalf("Apply() unexpected error = %v", err)
	}
	if !next.EnableDesktop {
		t.Fatal("EnableDesktop should be true after patch")
	}
	if next.ReadTimeout != timeout {
		t.Fatalf("ReadTimeout = %v, want %v", next.ReadTimeout, timeout)
	}
	if next.EnableSound != base.EnableSound || next.AutoRead != base.AutoRead {
		t.Fatal("unpatched fields must be left untouched")
	}

	bad := -time.Second
	got, err := base.Apply(SettingsPatch{ReadTimeout: &bad})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Apply() error = %v, want ErrValidation", err)
	}
	if got != base {
		t.Fatal("failed Apply() must return the unchanged settings")
	}
}
