package services

import "task-board.com/task-board/internal/constants"

type CreateBoardInput struct {
	Name        string
	Description *string
	Color       *string
}

type UpdateBoardInput struct {
	Name        *string
	Description *string
	Color       *string
}

type CreateColumnInput struct {
	Name     string
	Position *int
}

type UpdateColumnInput struct {
	Name     *string
	Position *int
}

type CreateTaskInput struct {
	ColumnID    string
	Title       string
	Description *string
	Status      *constants.TaskStatus
	Priority    *constants.TaskPriority
	DueDate     *string
	Position    *int
}

// UpdateTaskInput is a partial update. An empty DueDate clears it. Changing
// ColumnID without a Position appends the task to the new column.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
	Priority    *constants.TaskPriority
	DueDate     *string
	ColumnID    *string
	Position    *int
}

type UpdateProfileInput struct {
	Name  *string
	Email *string
}
