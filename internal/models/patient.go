package models

type Patient struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	ProfessionalID string `gorm:"size:36;index;not null" json:"professionalId"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	ParentName    string `gorm:"size:100" json:"parentName,omitempty"`
	ParentContact string `gorm:"size:100" json:"parentContact,omitempty"`

	// Agenda simplificada: vincula o paciente a uma alocação existente
	// (sala/dia/turno) do profissional.
	AllocationID *string `gorm:"size:36" json:"allocationId,omitempty"`
}
