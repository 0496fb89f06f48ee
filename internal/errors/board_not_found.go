package errors

var ErrBoardNotFound = NotFound("board not found")
