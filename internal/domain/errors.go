package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoUser               = errors.New("no user in context")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnknownPeriod        = errors.New("unknown period")
	ErrUnknownTab           = errors.New("unknown tab")
	ErrDeviceNotFound       = errors.New("device not found")
	ErrNoDeviceConnected    = errors.New("no device connected")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrChallengeClosed      = errors.New("challenge is not active")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnknownSetting       = errors.New("unknown notification setting")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrUnknownRange         = errors.New("unknown export range")
	ErrArtifactNotFound     = errors.New("artifact not found")
)

// ValidationError reports a form field that failed presence or parse checks.
// Message is what the user sees.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
