package services

import (
	"errors"
	"fmt"
)

// Domain errors carry stable snake_case codes that double as i18n message
// keys, so handlers can render them without a mapping table.
var (
	ErrInvalidHandle      = errors.New("invalid_handle")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrPasswordTooShort   = errors.New("password_too_short")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrHandleTaken        = errors.New("handle_taken")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")
	ErrSelfMessage        = errors.New("self_message_forbidden")
	ErrEmptyMessage       = errors.New("message_empty")
	ErrMessageTooLong     = errors.New("message_too_long")

	// ErrStorageUnavailable wraps unexpected datastore failures. It is never
	// shown verbatim: handlers log it and degrade.
	ErrStorageUnavailable = errors.New("storage_unavailable")
)

var domainErrs = []error{
	ErrInvalidHandle,
	ErrInvalidEmail,
	ErrPasswordTooShort,
	ErrPasswordMismatch,
	ErrHandleTaken,
	ErrEmailTaken,
	ErrInvalidCredentials,
	ErrNotFound,
	ErrSelfMessage,
	ErrEmptyMessage,
	ErrMessageTooLong,
}

// Code returns the message code for a user-facing domain error, or "" for
// anything else (storage failures, programming errors).
func Code(err error) string {
	for _, d := range domainErrs {
		if errors.Is(err, d) {
			return d.Error()
		}
	}
	return ""
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
