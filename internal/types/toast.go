package types

import (
	"time"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// ToastDuration is how long a notification stays on screen
const ToastDuration = 3 * time.Second

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// LevelFor maps a notification kind to a toast level
func LevelFor(kind domain.NotificationKind) ToastLevel {
	switch kind {
	case domain.NotifySuccess:
		return ToastSuccess
	case domain.NotifyWarning:
		return ToastWarning
	case domain.NotifyError:
		return ToastError
	default:
		return ToastInfo
	}
}

// NewToast creates a toast expiring ToastDuration after now
func NewToast(kind domain.NotificationKind, message string, now time.Time) Toast {
	return Toast{
		Level:   LevelFor(kind),
		Message: message,
		Expires: now.Add(ToastDuration),
	}
}

// ExpireToasts returns the toasts still visible at now
func ExpireToasts(toasts []Toast, now time.Time) []Toast {
	filtered := make([]Toast, 0, len(toasts))
	for _, toast := range toasts {
		if toast.Expires.After(now) {
			filtered = append(filtered, toast)
		}
	}
	return filtered
}
