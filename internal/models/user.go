package models

import "time"

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role  string `gorm:"size:20;not null" json:"role"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Address string `gorm:"size:255" json:"address,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`

	// Somente para profissionais
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`
	PhotoURL  string `gorm:"type:text" json:"photoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
