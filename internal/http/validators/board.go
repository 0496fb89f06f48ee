package validators

import dto "task-board.com/task-board/internal/data_models"

func ValidateCreateBoardRequest(r *dto.CreateBoardRequest) error {
	return firstError(
		requiredText("name", r.Name, maxNameLength),
		optionalText("description", r.Description, maxDescriptionLength),
		optionalColor(r.Color),
	)
}

func ValidateUpdateBoardRequest(r *dto.UpdateBoardRequest) error {
	var name error
	if r.Name != nil {
		name = requiredText("name", *r.Name, maxNameLength)
	}
	return firstError(
		name,
		optionalText("description", r.Description, maxDescriptionLength),
		optionalColor(r.Color),
	)
}
