package financial

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
)

type DeleteCategory struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDeleteCategory(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *DeleteCategory {
	return &DeleteCategory{store: store, cache: c, audit: audit}
}

// Execute apaga uma categoria. Antes, toda transação que a referencia
// pelo nome é re-rotulada para a sentinela "Pendente"; transações nunca
// são apagadas junto com a categoria.
func (uc *DeleteCategory) Execute(ctx context.Context, categoryID string) error {
	snap := uc.cache.Snapshot()

	cat := snap.CategoryByID(categoryID)
	if cat == nil {
		return httperr.ErrBusiness("category_not_found")
	}

	for _, t := range snap.Transactions {
		if t.Category != cat.Name {
			continue
		}
		t.Category = clinic.OrphanCategory
		if err := uc.store.Transactions().Save(ctx, &t); err != nil {
			uc.cache.LoadAll(ctx)
			return err
		}
	}

	err := uc.store.Categories().DeleteByID(ctx, categoryID)

	uc.cache.LoadAll(ctx)

	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "financial_category_deleted",
		Entity:   "financial_category",
		EntityID: &categoryID,
		Metadata: map[string]string{"name": cat.Name},
	})

	return nil
}
