package models

// SystemSettings é uma linha única (singleton) com a identidade visual.
type SystemSettings struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	LogoURL string `gorm:"type:text" json:"logoUrl,omitempty"`
}
