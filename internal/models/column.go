package model

import "time"

type Column struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Position  int       `gorm:"not null;index:idx_columns_board_position" json:"position"`
	BoardID   string    `gorm:"size:36;not null;index:idx_columns_board_position,priority:1" json:"boardId"`
	Tasks     []Task    `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
