package services

import (
	"errors"
	"fmt"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
)

// ErrorKind classifies lifecycle failures; the API maps each kind to one HTTP status.
type ErrorKind string

const (
	KindAuthenticationRequired ErrorKind = constants.ErrCodeAuthenticationRequired
	KindAuthorizationDenied    ErrorKind = constants.ErrCodeAuthorizationDenied
	KindValidationFailed       ErrorKind = constants.ErrCodeValidationFailed
	KindDuplicateRequest       ErrorKind = constants.ErrCodeDuplicateRequest
	KindNotFound               ErrorKind = constants.ErrCodeNotFound
	KindStoreUnavailable       ErrorKind = constants.ErrCodeStoreUnavailable
	KindAssignmentFailed       ErrorKind = constants.ErrCodeAssignmentFailed
	KindConflict               ErrorKind = constants.ErrCodeConflict
)

type LifecycleError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LifecycleError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = constants.GetErrorMessage(string(e.Kind))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

// PublicMessage is the text safe to show to end users.
func (e *LifecycleError) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return constants.GetErrorMessage(string(e.Kind))
}

func newError(kind ErrorKind, message string, err error) *LifecycleError {
	return &LifecycleError{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether any LifecycleError in err's chain has kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var le *LifecycleError
		if !errors.As(err, &le) {
			return false
		}
		if le.Kind == kind {
			return true
		}
		err = le.Err
	}
	return false
}

// KindOf returns the outermost kind in err's chain, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var le *LifecycleError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// storeErr classifies a repository error.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, "", err)
	case errors.Is(err, repositories.ErrVersionConflict):
		return newError(KindConflict, constants.MsgRoadmapVersionStale, err)
	default:
		return newError(KindStoreUnavailable, "", err)
	}
}

func validationErr(format string, args ...interface{}) error {
	return newError(KindValidationFailed, fmt.Sprintf(format, args...), nil)
}

func deniedErr(format string, args ...interface{}) error {
	return newError(KindAuthorizationDenied, fmt.Sprintf(format, args...), nil)
}
