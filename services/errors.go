package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors shared by the services and by the HTTP error mapping.
var (
	ErrValidationFailed = errors.New("validation failed")

	// not found
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrScheduleNotFound = errors.New("weekly schedule not found")

	// conflicts
	ErrPlayerNameConflict      = errors.New("player name is already in use")
	ErrPlayerEmailConflict     = errors.New("player email is already in use")
	ErrMatchDateConflict       = errors.New("a match already exists at that date")
	ErrGuestConflict           = errors.New("this player already invited a guest with that name")
	ErrScheduleWeekdayConflict = errors.New("a weekly schedule already exists for that weekday")

	// business rules
	ErrMatchAlreadyPlayed = errors.New("match was already played")
	ErrSchedulesReadOnly  = errors.New("weekly schedules are read-only in this configuration")
	ErrAvatarStorage      = errors.New("avatar storage is not configured")
	ErrAvatarContentType  = errors.New("avatar must be a JPEG, PNG or WebP image")

	// auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthenticationFailed   = errors.New("authentication failed")
)

// ValidationError carries per-field messages and unwraps to ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
