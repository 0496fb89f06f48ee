package dto

import "task-board.com/task-board/internal/constants"

type CreateTaskRequest struct {
	ColumnID    string                  `json:"columnId"`
	Title       string                  `json:"title"`
	Description *string                 `json:"description"`
	Status      *constants.TaskStatus   `json:"status"`
	Priority    *constants.TaskPriority `json:"priority"`
	DueDate     *string                 `json:"dueDate"`
	Position    *int                    `json:"position"`
}

type UpdateTaskRequest struct {
	ColumnID    *string                 `json:"columnId"`
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *constants.TaskStatus   `json:"status"`
	Priority    *constants.TaskPriority `json:"priority"`
	DueDate     *string                 `json:"dueDate"`
	Position    *int                    `json:"position"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"columnId"`
	Position *int   `json:"position"`
}
