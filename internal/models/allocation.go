package models

type Allocation struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;index;not null" json:"userId"`
	RoomID string `gorm:"size:36;index;not null" json:"roomId"`

	// Valores de exibição fixos (ver domain/clinic): 6 dias x 3 turnos
	Day   string `gorm:"size:30;not null" json:"day"`
	Shift string `gorm:"size:30;not null" json:"shift"`
}
