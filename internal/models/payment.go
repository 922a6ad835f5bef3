package models

import "time"

type Payment struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;index;not null" json:"userId"`

	Amount float64 `gorm:"not null" json:"amount"`

	// Datas no formato YYYY-MM-DD, como exibidas
	DueDate  string `gorm:"size:10;not null" json:"dueDate"`
	PaidDate string `gorm:"size:10" json:"paidDate,omitempty"`

	Status string `gorm:"size:20;not null" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}
