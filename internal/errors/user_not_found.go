package errors

var ErrUserNotFound = NotFound("user not found")
