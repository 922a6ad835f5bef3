package allocation

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

func (uc *Delete) Execute(ctx context.Context, id string) error {
	if err := uc.store.Allocations().DeleteByID(ctx, id); err != nil {
		return err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "allocation_deleted",
		Entity:   "allocation",
		EntityID: &id,
	})

	return nil
}
