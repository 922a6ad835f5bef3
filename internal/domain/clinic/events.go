package clinic

import (
	"strings"
	"time"

	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// ===============================
// Validações de inscrição em evento
// ===============================

// As checagens rodam sobre o cache local ANTES do insert. Duas inscrições
// simultâneas podem passar pela checagem antes de qualquer escrita chegar
// ao servidor (janela de corrida aceita e documentada).

// CanRegister valida uma nova inscrição:
//   - rejeita e-mail que já tem inscrição CONFIRMED no evento;
//   - rejeita depois do prazo (data/hora no fuso da clínica);
//   - rejeita quando as vagas CONFIRMED chegaram ao limite (spots nil = ilimitado).
func CanRegister(ev *models.ClinicEvent, registrations []models.EventRegistration, participantEmail string, now time.Time) error {
	for _, r := range registrations {
		if r.EventID == ev.ID &&
			r.Status == RegistrationConfirmed &&
			strings.EqualFold(r.ParticipantEmail, participantEmail) {
			return httperr.ErrBusiness("already_registered")
		}
	}

	if ev.RegistrationDeadlineDate != "" {
		deadlineTime := ev.RegistrationDeadlineTime
		if deadlineTime == "" {
			deadlineTime = "23:59"
		}
		deadline, err := time.ParseInLocation(
			"2006-01-02 15:04",
			ev.RegistrationDeadlineDate+" "+deadlineTime,
			now.Location(),
		)
		if err != nil {
			return httperr.ErrBusiness("invalid_deadline")
		}
		if now.After(deadline) {
			return httperr.ErrBusiness("registration_closed")
		}
	}

	if ev.Spots != nil {
		if ConfirmedCount(registrations, ev.ID) >= *ev.Spots {
			return httperr.ErrBusiness("event_full")
		}
	}

	return nil
}

// ValidateModality garante que exatamente um entre local e link está
// preenchido, conforme a modalidade do evento.
func ValidateModality(ev *models.ClinicEvent) error {
	switch EventModality(ev.Modality) {
	case ModalityPresential:
		if ev.Location == "" || ev.Link != "" {
			return httperr.ErrBusiness("presential_requires_location")
		}
	case ModalityOnline:
		if ev.Link == "" || ev.Location != "" {
			return httperr.ErrBusiness("online_requires_link")
		}
	default:
		return httperr.ErrBusiness("invalid_modality")
	}
	return nil
}

// ConfirmedCount conta as inscrições CONFIRMED de um evento.
func ConfirmedCount(registrations []models.EventRegistration, eventID string) int {
	count := 0
	for _, r := range registrations {
		if r.EventID == eventID && r.Status == RegistrationConfirmed {
			count++
		}
	}
	return count
}
