package engine

import (
	"fmt"
	"time"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"go.uber.org/zap"
)

// Toast is a transient channel event. It is independent of the
// persisted record and never affects read state.
type Toast struct {
	Type     domain.Type
	Title    string
	Message  string
	Duration time.Duration
	Position string
	Color    string
}

// Toaster is the transient rendering port the UI collaborator provides.
type Toaster interface {
	Show(toast Toast)
}

// ToastConfig carries the rendering defaults handed to every toast.
type ToastConfig struct {
	Duration time.Duration
	Position string
	Colors   map[domain.Type]string
}

func DefaultToastConfig() ToastConfig {
	return ToastConfig{
		Duration: 5 * time.Second,
		Position: "top-right",
		Colors: map[domain.Type]string{
			domain.TypeSuccess: "#16a34a",
			domain.TypeError:   "#dc2626",
			domain.TypeWarning: "#d97706",
			domain.TypeInfo:    "#2563eb",
			domain.TypeLoading: "#6b7280",
		},
	}
}

// Tone selects the short alert sound; errors get the lower tone.
type Tone int

const (
	ToneHigh Tone = iota
	ToneLow
)

const (
	toneHighFrequencyHz = 880.0
	toneLowFrequencyHz  = 330.0
)

func (t Tone) FrequencyHz() float64 {
	if t == ToneLow {
		return toneLowFrequencyHz
	}
	return toneHighFrequencyHz
}

// Sounder is the audio channel port.
type Sounder interface {
	Play(tone Tone)
}

// Permission is the OS desktop notification permission state. Hosts
// without a notification API report Unsupported, which the engine
// treats as permanently unavailable.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
	PermissionUnsupported
)

func (p Permission) String() string {
	switch p {
	case PermissionDefault:
		return "default"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// DesktopNotifier is the OS-level alert port. The engine never requests
// permission on its own; that is an explicit user action.
type DesktopNotifier interface {
	Permission() Permission
	RequestPermission() (Permission, error)
	Notify(title, message string) error
}

// LogToaster renders toasts into the structured log. It stands in for
// the UI toast surface, which is out of scope on this side.
type LogToaster struct {
	logger *zap.Logger
	cfg    ToastConfig
}

func NewLogToaster(logger *zap.Logger, cfg ToastConfig) *LogToaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Duration <= 0 {
		cfg = DefaultToastConfig()
	}
	return &LogToaster{logger: logger, cfg: cfg}
}

func (t *LogToaster) Config() ToastConfig { return t.cfg }

func (t *LogToaster) Show(toast Toast) {
	t.logger.Info("toast",
		zap.String("type", toast.Type.String()),
		zap.String("title", toast.Title),
		zap.String("message", toast.Message),
		zap.Duration("duration", toast.Duration),
		zap.String("position", toast.Position),
		zap.String("color", toast.Color),
	)
}

// LogSounder logs the tone instead of producing audio.
type LogSounder struct {
	logger *zap.Logger
}

func NewLogSounder(logger *zap.Logger) *LogSounder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSounder{logger: logger}
}

func (s *LogSounder) Play(tone Tone) {
	s.logger.Info("notification sound", zap.Float64("frequencyHz", tone.FrequencyHz()))
}

// UnsupportedDesktop is the notifier for hosts without a desktop
// notification API.
type UnsupportedDesktop struct{}

func (UnsupportedDesktop) Permission() Permission { return PermissionUnsupported }

func (UnsupportedDesktop) RequestPermission() (Permission, error) {
	return PermissionUnsupported, nil
}

func (UnsupportedDesktop) Notify(title, message string) error {
	return fmt.Errorf("desktop notifications are not supported on this host")
}
