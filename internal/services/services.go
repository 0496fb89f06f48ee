package services

import (
	"errors"
	"strings"
	"time"

	apperrors "task-board.com/task-board/internal/errors"
	repository "task-board.com/task-board/internal/repositories"
)

// orNotFound swaps a repository miss for the caller's typed failure.
func orNotFound(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDueDate accepts an RFC 3339 timestamp or a plain date. A nil or blank
// value means no due date.
func ParseDueDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(*value)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.Validation("dueDate must be an ISO 8601 date or timestamp")
}
