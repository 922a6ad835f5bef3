package event

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	EventID          string
	ParticipantName  string
	ParticipantEmail string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewRegister(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *Register {
	return &Register{store: store, cache: c, audit: audit}
}

// Execute inscreve um participante num evento. As três checagens
// (e-mail já CONFIRMED, prazo no fuso da clínica, vagas) são avaliadas
// sobre o cache antes da escrita; inscrições simultâneas podem estourar
// a capacidade por pequena margem — comportamento aceito e documentado.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.EventRegistration, error) {
	email := strings.ToLower(strings.TrimSpace(in.ParticipantEmail))
	if email == "" || in.ParticipantName == "" {
		return nil, httperr.ErrBusiness("missing_participant")
	}

	snap := uc.cache.Snapshot()

	ev := snap.EventByID(in.EventID)
	if ev == nil {
		return nil, httperr.ErrBusiness("event_not_found")
	}

	now := timezone.Now()
	if err := clinic.CanRegister(ev, snap.Registrations, email, now); err != nil {
		return nil, err
	}

	reg := &models.EventRegistration{
		ID:               uuid.NewString(),
		EventID:          ev.ID,
		ParticipantName:  in.ParticipantName,
		ParticipantEmail: email,
		RegistrationDate: now,
		Status:           clinic.RegistrationConfirmed,
	}

	if err := uc.store.Registrations().Insert(ctx, reg); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "event_registration_created",
		Entity:   "event_registration",
		EntityID: &reg.ID,
	})

	return reg, nil
}
