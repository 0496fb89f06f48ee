package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-board.com/task-board/internal/constants"
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestValidateCreateBoardRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateBoardRequest(&dto.CreateBoardRequest{Name: "Sprint", Color: strPtr("#AABBCC")}))

	err := ValidateCreateBoardRequest(&dto.CreateBoardRequest{Name: "  "})
	assert.EqualError(t, err, "name is required")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))

	err = ValidateCreateBoardRequest(&dto.CreateBoardRequest{Name: strings.Repeat("x", 101)})
	assert.EqualError(t, err, "name must be at most 100 characters")

	err = ValidateCreateBoardRequest(&dto.CreateBoardRequest{Name: "ok", Color: strPtr("blue")})
	assert.Error(t, err)
}

func TestValidateColumnRequests(t *testing.T) {
	assert.NoError(t, ValidateCreateColumnRequest(&dto.CreateColumnRequest{Name: "Review"}))
	assert.Error(t, ValidateCreateColumnRequest(&dto.CreateColumnRequest{Name: "Review", Position: intPtr(-1)}))

	assert.EqualError(t, ValidateReorderColumnRequest(&dto.ReorderColumnRequest{}), "position is required")
	assert.NoError(t, ValidateReorderColumnRequest(&dto.ReorderColumnRequest{Position: intPtr(0)}))

	assert.Error(t, ValidateUpdateColumnRequest(&dto.UpdateColumnRequest{Name: strPtr("")}))
}

func TestValidateTaskRequests(t *testing.T) {
	bogus := constants.TaskStatus("BLOCKED")
	high := constants.PriorityHigh

	assert.EqualError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "t"}), "columnId is required")
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{ColumnID: "c", Title: "t", Priority: &high}))
	assert.Error(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{ColumnID: "c", Title: "t", Status: &bogus}))

	assert.Error(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{ColumnID: strPtr("")}))
	assert.NoError(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Position: intPtr(3)}))

	assert.EqualError(t, ValidateMoveTaskRequest(&dto.MoveTaskRequest{ColumnID: "c"}), "position is required")
	assert.Error(t, ValidateMoveTaskRequest(&dto.MoveTaskRequest{ColumnID: "c", Position: intPtr(-2)}))
}

func TestValidateAuthRequests(t *testing.T) {
	assert.NoError(t, ValidateLoginRequest(&dto.LoginRequest{Email: "a@b.co", Password: "x"}))
	assert.EqualError(t, ValidateLoginRequest(&dto.LoginRequest{Email: "nope", Password: "x"}), "email is invalid")
	assert.EqualError(t, ValidateLoginRequest(&dto.LoginRequest{Email: "a@b.co"}), "password is required")

	assert.Error(t, ValidateUpdateProfileRequest(&dto.UpdateProfileRequest{Email: strPtr("bad")}))
	assert.NoError(t, ValidateMagicLinkRequest(&dto.MagicLinkRequest{Email: "a@b.co"}))
}
