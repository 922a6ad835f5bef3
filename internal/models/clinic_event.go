package models

type ClinicEvent struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`

	Date string `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null" json:"time"`  // HH:MM

	Modality string `gorm:"size:20;not null" json:"modality"`

	// Exatamente um dos dois é preenchido, conforme a modalidade
	Location string `gorm:"size:255" json:"location,omitempty"`
	Link     string `gorm:"size:255" json:"link,omitempty"`

	Speaker    string `gorm:"size:100" json:"speaker"`
	SpeakerBio string `gorm:"type:text" json:"speakerBio"`
	Summary    string `gorm:"type:text" json:"summary"`

	// nil = vagas ilimitadas
	Spots *int `json:"spots,omitempty"`

	RequiresRegistration bool `json:"requiresRegistration"`

	RegistrationDeadlineDate string `gorm:"size:10" json:"registrationDeadlineDate,omitempty"`
	RegistrationDeadlineTime string `gorm:"size:5" json:"registrationDeadlineTime,omitempty"`
}
