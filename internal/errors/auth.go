package errors

import "net/http"

var (
	ErrInvalidCredentials = &Exception{
		Kind:       KindInvalidOperation,
		Message:    "invalid email or password",
		StatusCode: http.StatusUnauthorized,
	}

	ErrOwnerRequired = &Exception{
		Kind:       KindInvalidOperation,
		Message:    "an authenticated owner is required",
		StatusCode: http.StatusBadRequest,
	}

	ErrUnauthenticated = &Exception{
		Kind:       KindUnauthenticated,
		Message:    "authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidToken = &Exception{
		Kind:       KindUnauthenticated,
		Message:    "invalid or expired token",
		StatusCode: http.StatusUnauthorized,
	}

	ErrForbidden = &Exception{
		Kind:       KindUnauthorized,
		Message:    "you do not have access to this resource",
		StatusCode: http.StatusForbidden,
	}

	ErrEmailTaken = &Exception{
		Kind:       KindInvalidOperation,
		Message:    "email is already in use",
		StatusCode: http.StatusConflict,
	}

	ErrMagicLinkInvalid = &Exception{
		Kind:       KindInvalidOperation,
		Message:    "magic link is invalid, used or expired",
		StatusCode: http.StatusBadRequest,
	}
)
