// Package engine owns the in-app notification collection: ingestion
// with channel dispatch, read-state transitions, settings, and timed
// auto-resolution. One engine instance exists per process, constructed
// by the composition root and handed to every consumer.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/observability"
	"go.uber.org/zap"
)

// Draft is the partial input to ingestion; the engine fills in id,
// timestamp, and defaults for the omitted fields.
type Draft struct {
	Type      domain.Type
	Priority  domain.Priority
	Category  string
	Title     string
	Message   string
	Data      map[string]any
	ShowToast *bool
}

// Config collects the engine wiring.
type Config struct {
	Settings domain.Settings
	Toaster  Toaster
	Sounder  Sounder
	Desktop  DesktopNotifier
	Toasts   ToastConfig
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// Engine is the notification dispatcher. All mutations are serialized
// under one lock so the full ingestion sequence (insert, toast, sound,
// desktop, schedule) completes before the next call observes anything.
type Engine struct {
	mu       sync.Mutex
	records  []domain.Notification
	settings domain.Settings
	timers   map[string]*time.Timer
	closed   bool

	toaster Toaster
	sounder Sounder
	desktop DesktopNotifier
	toasts  ToastConfig
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
	newID   func(time.Time) string
}

func New(cfg Config) (*Engine, error) {
	if cfg.Desktop == nil {
		cfg.Desktop = UnsupportedDesktop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Settings == (domain.Settings{}) {
		cfg.Settings = domain.DefaultSettings()
	}
	if cfg.Settings.ReadTimeout <= 0 {
		return nil, fmt.Errorf("settings read timeout must be positive")
	}
	if cfg.Toasts.Duration <= 0 {
		cfg.Toasts = DefaultToastConfig()
	}

	return &Engine{
		records:  make([]domain.Notification, 0, 16),
		settings: cfg.Settings,
		timers:   make(map[string]*time.Timer),
		toaster:  cfg.Toaster,
		sounder:  cfg.Sounder,
		desktop:  cfg.Desktop,
		toasts:   cfg.Toasts,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		now:      time.Now,
		newID:    domain.NewNotificationID,
	}, nil
}

// Add ingests a partial notification, prepends the completed record to
// the collection, and fires the configured channels. It returns the
// generated record id.
func (e *Engine) Add(draft Draft) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", fmt.Errorf("notification engine is closed")
	}

	now := e.now()
	record := domain.Notification{
		ID:        e.newID(now),
		Timestamp: now,
		Read:      false,
		Priority:  draft.Priority,
		Type:      draft.Type,
		Category:  draft.Category,
		Title:     draft.Title,
		Message:   draft.Message,
		Data:      draft.Data,
		ShowToast: draft.ShowToast == nil || *draft.ShowToast,
	}
	if record.Priority == "" {
		record.Priority = domain.PriorityMedium
	}
	if record.Type == "" {
		record.Type = domain.TypeInfo
	}

	if err := record.Validate(); err != nil {
		return "", err
	}

	// Newest-first: insertion always prepends.
	e.records = append([]domain.Notification{record}, e.records...)
	e.metrics.IncNotificationIngested(record.Type.String(), record.Priority.String())
	e.metrics.SetUnreadCount(e.unreadLocked())

	e.dispatchLocked(record)
	e.scheduleAutoReadLocked(record)

	return record.ID, nil
}

// Success, Error, Warning, and Info are ingestion shorthands for the
// common call sites.
func (e *Engine) Success(title, message string) (string, error) {
	return e.Add(Draft{Type: domain.TypeSuccess, Title: title, Message: message})
}

func (e *Engine) Error(title, message string) (string, error) {
	return e.Add(Draft{Type: domain.TypeError, Priority: domain.PriorityHigh, Title: title, Message: message})
}

func (e *Engine) Warning(title, message string) (string, error) {
	return e.Add(Draft{Type: domain.TypeWarning, Title: title, Message: message})
}

func (e *Engine) Info(title, message string) (string, error) {
	return e.Add(Draft{Type: domain.TypeInfo, Title: title, Message: message})
}

func (e *Engine) dispatchLocked(record domain.Notification) {
	// Urgent records always reach the toast channel, regardless of the
	// caller's suppression flag.
	if e.toaster != nil && (record.ShowToast || record.Priority == domain.PriorityUrgent) {
		e.toaster.Show(Toast{
			Type:     record.Type,
			Title:    record.Title,
			Message:  record.Message,
			Duration: e.toasts.Duration,
			Position: e.toasts.Position,
			Color:    e.toasts.Colors[record.Type],
		})
	}

	if e.sounder != nil && e.settings.EnableSound && record.Priority != domain.PriorityLow {
		tone := ToneHigh
		if record.Type == domain.TypeError {
			tone = ToneLow
		}
		e.sounder.Play(tone)
	}

	if e.settings.EnableDesktop && e.desktop.Permission() == PermissionGranted {
		if err := e.desktop.Notify(record.Title, record.Message); err != nil {
			e.logger.Warn("desktop notification failed", zap.String("id", record.ID), zap.Error(err))
		}
	}
}

func (e *Engine) scheduleAutoReadLocked(record domain.Notification) {
	if !e.settings.AutoRead || record.Priority != domain.PriorityLow {
		return
	}

	id := record.ID
	e.timers[id] = time.AfterFunc(e.settings.ReadTimeout, func() {
		e.autoRead(id)
	})
}

func (e *Engine) autoRead(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.timers, id)
	if e.closed {
		return
	}
	// A record removed before the timer fired is silently skipped.
	e.markReadLocked(id)
}

// MarkAsRead marks one record read; it reports whether the record was
// found.
func (e *Engine) MarkAsRead(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.markReadLocked(id)
}

func (e *Engine) markReadLocked(id string) bool {
	for i := range e.records {
		if e.records[i].ID == id {
			e.records[i].Read = true
			e.metrics.SetUnreadCount(e.unreadLocked())
			return true
		}
	}
	return false
}

// MarkAllAsRead marks every record read and returns how many changed.
func (e *Engine) MarkAllAsRead() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := 0
	for i := range e.records {
		if !e.records[i].Read {
			e.records[i].Read = true
			changed++
		}
	}
	e.metrics.SetUnreadCount(0)
	return changed
}

// Remove deletes one record and cancels its pending auto-read timer.
func (e *Engine) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if timer, ok := e.timers[id]; ok {
		timer.Stop()
		delete(e.timers, id)
	}

	for i := range e.records {
		if e.records[i].ID == id {
			e.records = append(e.records[:i], e.records[i+1:]...)
			e.metrics.SetUnreadCount(e.unreadLocked())
			return true
		}
	}
	return false
}

// Clear drops the whole collection and cancels every pending timer.
func (e *Engine) Clear() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()
	removed := len(e.records)
	e.records = e.records[:0]
	e.metrics.SetUnreadCount(0)
	return removed
}

// Notifications returns a copy of the collection, newest-first.
func (e *Engine) Notifications() []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Notification, len(e.records))
	copy(out, e.records)
	return out
}

// UnreadCount is derived, never stored.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unreadLocked()
}

func (e *Engine) unreadLocked() int {
	count := 0
	for i := range e.records {
		if !e.records[i].Read {
			count++
		}
	}
	return count
}

func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings merges the patch into the current settings after
// validation and returns the result.
func (e *Engine) UpdateSettings(patch domain.SettingsPatch) (domain.Settings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.settings.Apply(patch)
	if err != nil {
		return e.settings, err
	}

	e.settings = next
	e.logger.Info("notification settings updated",
		zap.Bool("enableSound", next.EnableSound),
		zap.Bool("enableDesktop", next.EnableDesktop),
		zap.Bool("autoRead", next.AutoRead),
		zap.Duration("readTimeout", next.ReadTimeout),
	)
	return next, nil
}

// RequestDesktopPermission asks the host for desktop permission. The
// engine itself never triggers this; it is wired to an explicit user
// action.
func (e *Engine) RequestDesktopPermission() (Permission, error) {
	return e.desktop.RequestPermission()
}

// Close cancels every outstanding timer and rejects further ingestion.
// It is safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.cancelTimersLocked()
}

func (e *Engine) cancelTimersLocked() {
	for id, timer := range e.timers {
		timer.Stop()
		delete(e.timers, id)
	}
}
