package event

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
)

type Delete struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDelete(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *Delete {
	return &Delete{store: store, cache: c, audit: audit}
}

// Execute apaga o evento em cascata: inscrições primeiro, evento depois.
// Duas chamadas independentes, sem rollback se a segunda falhar.
func (uc *Delete) Execute(ctx context.Context, eventID string) error {
	if err := uc.store.Registrations().DeleteBy(ctx, "event_id", eventID); err != nil {
		return err
	}

	err := uc.store.Events().DeleteByID(ctx, eventID)

	uc.cache.LoadAll(ctx)

	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "event_deleted",
		Entity:   "event",
		EntityID: &eventID,
	})

	return nil
}
