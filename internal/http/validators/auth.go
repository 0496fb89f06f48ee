package validators

import (
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if err := email(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return apperrors.Validation("password is required")
	}
	return nil
}

func ValidateUpdateProfileRequest(r *dto.UpdateProfileRequest) error {
	if r.Email != nil {
		if err := email(*r.Email); err != nil {
			return err
		}
	}
	return optionalText("name", r.Name, maxNameLength)
}

func ValidateMagicLinkRequest(r *dto.MagicLinkRequest) error {
	return email(r.Email)
}
