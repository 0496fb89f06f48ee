package model

import "time"

type Board struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	Color       string    `gorm:"size:16;not null" json:"color"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"`
	Columns     []Column  `gorm:"constraint:OnDelete:CASCADE" json:"columns,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
