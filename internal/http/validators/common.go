package validators

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "task-board.com/task-board/internal/errors"
)

const (
	maxNameLength        = 100
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func requiredText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation(field + " is required")
	}
	return maxLength(field, value, max)
}

func optionalText(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return maxLength(field, *value, max)
}

func maxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperrors.Validation(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

func optionalPosition(value *int) error {
	if value != nil && *value < 0 {
		return apperrors.Validation("position must be a non-negative integer")
	}
	return nil
}

func optionalColor(value *string) error {
	if value != nil && !colorPattern.MatchString(*value) {
		return apperrors.Validation("color must be a hex value like #3b82f6")
	}
	return nil
}

func email(value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation("email is required")
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return apperrors.Validation("email is invalid")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
