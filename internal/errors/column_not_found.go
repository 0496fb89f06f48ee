package errors

var (
	ErrColumnNotFound       = NotFound("column not found")
	ErrTargetColumnNotFound = NotFound("target column not found")
)
