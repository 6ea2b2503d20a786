package domain

import (
	"fmt"
	"time"
)

const defaultReadTimeout = 5 * time.Second

// Settings is the engine-wide notification configuration. Email and SMS
// delivery are reserved for a later backend integration; the flags are
// carried so stored preferences round-trip.
type Settings struct {
	EnableSound   bool          `json:"enableSound"`
	EnableDesktop bool          `json:"enableDesktop"`
	EnableEmail   bool          `json:"enableEmail"`
	EnableSMS     bool          `json:"enableSMS"`
	AutoRead      bool          `json:"autoRead"`
	ReadTimeout   time.Duration `json:"readTimeout"`
}

func DefaultSettings() Settings {
	return Settings{
		EnableSound:   true,
		EnableDesktop: false,
		EnableEmail:   false,
		EnableSMS:     false,
		AutoRead:      true,
		ReadTimeout:   defaultReadTimeout,
	}
}

// SettingsPatch is a partial settings update; nil fields are left
// untouched by Apply.
type SettingsPatch struct {
	EnableSound   *bool          `json:"enableSound"`
	EnableDesktop *bool          `json:"enableDesktop"`
	EnableEmail   *bool          `json:"enableEmail"`
	EnableSMS     *bool          `json:"enableSMS"`
	AutoRead      *bool          `json:"autoRead"`
	ReadTimeout   *time.Duration `json:"readTimeout"`
}

// Apply merges the patch into a copy of s and validates the result.
func (s Settings) Apply(patch SettingsPatch) (Settings, error) {
	next := s

	if patch.EnableSound != nil {
		next.EnableSound = *patch.EnableSound
	}
	if patch.EnableDesktop != nil {
		next.EnableDesktop = *patch.EnableDesktop
	}
	if patch.EnableEmail != nil {
		next.EnableEmail = *patch.EnableEmail
	}
	if patch.EnableSMS != nil {
		next.EnableSMS = *patch.EnableSMS
	}
	if patch.AutoRead != nil {
		next.AutoRead = *patch.AutoRead
	}
	if patch.ReadTimeout != nil {
		if *patch.ReadTimeout <= 0 {
			return s, fmt.Errorf("%w: read timeout must be positive", ErrValidation)
		}
		next.ReadTimeout = *patch.ReadTimeout
	}

	return next, nil
}
