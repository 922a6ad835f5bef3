package models

type InventoryItem struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	TotalQuantity     int `gorm:"not null" json:"totalQuantity"`
	AvailableQuantity int `gorm:"not null" json:"availableQuantity"`
}
