package model

import "time"

type MagicLink struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Token     string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Email     string     `gorm:"not null;index" json:"email"`
	UserID    *string    `gorm:"size:36" json:"userId"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (m *MagicLink) Expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}
