package models

import "time"

type Loan struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;index;not null" json:"userId"`

	// Empréstimos referenciam o item pelo NOME, não pelo id.
	// Renomear um item desvincula os empréstimos históricos (fragilidade
	// conhecida, mantida por compatibilidade com os dados existentes).
	ItemName string `gorm:"size:100;not null" json:"itemName"`

	Quantity    int        `gorm:"not null" json:"quantity"`
	RequestDate time.Time  `json:"requestDate"`
	ReturnDate  *time.Time `json:"returnDate,omitempty"`

	Status string `gorm:"size:20;not null" json:"status"`
}
