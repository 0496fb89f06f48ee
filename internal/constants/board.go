package constants

const DefaultBoardColor = "#3b82f6"

// DefaultColumns are seeded, in order, into every new board.
var DefaultColumns = []string{"To Do", "In Progress", "Done"}
