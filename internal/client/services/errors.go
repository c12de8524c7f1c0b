package services

import (
	"errors"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
)

var (
	// ErrAuthFailed matches every failed login or registration.
	ErrAuthFailed = errors.New("authentication failed")

	ErrInvalidCredentials  = errors.New("username and password are required")
	ErrInvalidSetting      = errors.New("invalid setting")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrOperationInProgress = errors.New("another session operation is in progress")
)

// AuthError reports a failed login or registration. Its text is the short
// user-facing message; the cause stays reachable through errors.Is/As.
type AuthError struct {
	Msg string
	Err error
}

func (e *AuthError) Error() string { return e.Msg }

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuthFailed }

// ErrorMessage turns err into a line fit for the user: the server's own
// explanation when it sent one, else the error text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *client.StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
