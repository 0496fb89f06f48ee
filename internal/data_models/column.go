package dto

type CreateColumnRequest struct {
	BoardID  string `json:"boardId"`
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

type UpdateColumnRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

type ReorderColumnRequest struct {
	Position *int `json:"position"`
}
