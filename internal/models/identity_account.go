package models

import "time"

// IdentityAccount é a conta de login do provedor de identidade.
// "Ter sessão válida" e "ter perfil em users" são condições independentes:
// as duas precisam valer para o acesso ser liberado.
type IdentityAccount struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
