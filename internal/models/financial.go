package models

import "time"

type FinancialTransaction struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`

	Type string `gorm:"size:10;not null" json:"type"` // INCOME | EXPENSE

	// Nome da categoria, desnormalizado. Categoria órfã cai em "Pendente".
	Category string `gorm:"size:100;not null" json:"category"`

	Date string `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"createdAt"`
}

type FinancialCategory struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Type string `gorm:"size:10;not null" json:"type"`
}
