package validators

import (
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

// ValidateCreateColumnRequest does not check BoardID: on nested routes it
// comes from the path.
func ValidateCreateColumnRequest(r *dto.CreateColumnRequest) error {
	return firstError(
		requiredText("name", r.Name, maxNameLength),
		optionalPosition(r.Position),
	)
}

func ValidateUpdateColumnRequest(r *dto.UpdateColumnRequest) error {
	var name error
	if r.Name != nil {
		name = requiredText("name", *r.Name, maxNameLength)
	}
	return firstError(name, optionalPosition(r.Position))
}

func ValidateReorderColumnRequest(r *dto.ReorderColumnRequest) error {
	if r.Position == nil {
		return apperrors.Validation("position is required")
	}
	return optionalPosition(r.Position)
}
