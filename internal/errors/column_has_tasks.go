package errors

import "net/http"

var ErrColumnHasTasks = &Exception{
	Kind:       KindInvalidOperation,
	Message:    "cannot delete column with existing tasks",
	StatusCode: http.StatusBadRequest,
}
