package model

import (
	"time"

	"task-board.com/task-board/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description *string                `json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate     *time.Time             `json:"dueDate"`
	Position    int                    `gorm:"not null;index:idx_tasks_column_position" json:"position"`
	ColumnID    string                 `gorm:"size:36;not null;index:idx_tasks_column_position,priority:1" json:"columnId"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}
