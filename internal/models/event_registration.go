package models

import "time"

type EventRegistration struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	EventID string `gorm:"size:36;index;not null" json:"eventId"`

	ParticipantName  string `gorm:"size:100;not null" json:"participantName"`
	ParticipantEmail string `gorm:"size:100;not null" json:"participantEmail"`

	RegistrationDate time.Time `json:"registrationDate"`

	Status string `gorm:"size:20;not null" json:"status"`

	// Presença marcada pelo admin depois do evento
	Attended *bool `json:"attended,omitempty"`
}
