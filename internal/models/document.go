package models

import "time"

type Document struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Title   string `gorm:"size:150;not null" json:"title"`
	LinkURL string `gorm:"size:255;not null" json:"linkUrl"`

	// nil = visível para todos os profissionais
	TargetUserID *string `gorm:"size:36;index" json:"targetUserId"`

	CreatedAt time.Time `json:"createdAt"`
}
