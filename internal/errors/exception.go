package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindRateLimited      Kind = "RATE_LIMITED"
)

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches exceptions by kind and message so that copies made by
// constructors still compare equal to the sentinel they were built from.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func As(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func Validation(message string) *Exception {
	return &Exception{
		Kind:       KindValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NotFound(message string) *Exception {
	return &Exception{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}
