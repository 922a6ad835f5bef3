package allocation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	UserID string
	RoomID string
	Day    string
	Shift  string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewCreate(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *Create {
	return &Create{store: store, cache: c, audit: audit}
}

// Execute cria uma alocação de sala. A checagem de conflito roda sobre o
// cache local ANTES da escrita: rápido para o usuário, mas sujeito à
// janela de staleness (duas criações simultâneas podem passar).
func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Allocation, error) {
	if !clinic.IsValidDay(in.Day) || !clinic.IsValidShift(in.Shift) {
		return nil, httperr.ErrBusiness("invalid_day_or_shift")
	}

	snap := uc.cache.Snapshot()

	if snap.UserByID(in.UserID) == nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if snap.RoomByID(in.RoomID) == nil {
		return nil, httperr.ErrBusiness("room_not_found")
	}

	if clinic.FindScheduleConflict(snap.Allocations, in.RoomID, in.Day, in.Shift) != nil {
		return nil, httperr.ErrBusiness("schedule_conflict")
	}

	al := &models.Allocation{
		ID:     uuid.NewString(),
		UserID: in.UserID,
		RoomID: in.RoomID,
		Day:    in.Day,
		Shift:  in.Shift,
	}

	if err := uc.store.Allocations().Insert(ctx, al); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "allocation_created",
		Entity:   "allocation",
		EntityID: &al.ID,
	})

	return al, nil
}
