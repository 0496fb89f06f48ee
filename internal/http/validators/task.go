package validators

import (
	"task-board.com/task-board/internal/constants"
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.ColumnID == "" {
		return apperrors.Validation("columnId is required")
	}
	return firstError(
		requiredText("title", r.Title, maxTitleLength),
		optionalText("description", r.Description, maxDescriptionLength),
		status(r.Status),
		priority(r.Priority),
		optionalPosition(r.Position),
	)
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	var title, column error
	if r.Title != nil {
		title = requiredText("title", *r.Title, maxTitleLength)
	}
	if r.ColumnID != nil && *r.ColumnID == "" {
		column = apperrors.Validation("columnId must not be empty")
	}
	return firstError(
		title,
		column,
		optionalText("description", r.Description, maxDescriptionLength),
		status(r.Status),
		priority(r.Priority),
		optionalPosition(r.Position),
	)
}

func ValidateMoveTaskRequest(r *dto.MoveTaskRequest) error {
	if r.ColumnID == "" {
		return apperrors.Validation("columnId is required")
	}
	if r.Position == nil {
		return apperrors.Validation("position is required")
	}
	return optionalPosition(r.Position)
}

func status(s *constants.TaskStatus) error {
	if s != nil && !s.Valid() {
		return apperrors.Validation("status must be one of TODO, IN_PROGRESS, DONE")
	}
	return nil
}

func priority(p *constants.TaskPriority) error {
	if p != nil && !p.Valid() {
		return apperrors.Validation("priority must be one of LOW, MEDIUM, HIGH, URGENT")
	}
	return nil
}
