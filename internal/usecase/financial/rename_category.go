package financial

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

type RenameCategory struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewRenameCategory(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *RenameCategory {
	return &RenameCategory{store: store, cache: c, audit: audit}
}

// Execute renomeia a categoria e re-rotula, uma a uma, as transações que
// apontavam para o nome antigo E têm o mesmo tipo. Transações de outro
// tipo com o mesmo nome de categoria não são tocadas. Passos sequenciais
// sem transação: falha no meio deixa parte re-rotulada.
func (uc *RenameCategory) Execute(ctx context.Context, categoryID, newName string) (*models.FinancialCategory, error) {
	if newName == "" {
		return nil, httperr.ErrBusiness("missing_category_name")
	}

	snap := uc.cache.Snapshot()

	cat := snap.CategoryByID(categoryID)
	if cat == nil {
		return nil, httperr.ErrBusiness("category_not_found")
	}

	oldName := cat.Name

	upd := *cat
	upd.Name = newName
	if err := uc.store.Categories().Save(ctx, &upd); err != nil {
		return nil, err
	}

	for _, t := range clinic.TransactionsInCategory(snap.Transactions, oldName, cat.Type) {
		t.Category = newName
		if err := uc.store.Transactions().Save(ctx, &t); err != nil {
			uc.cache.LoadAll(ctx)
			return nil, err
		}
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "financial_category_renamed",
		Entity:   "financial_category",
		EntityID: &categoryID,
		Metadata: map[string]string{"from": oldName, "to": newName},
	})

	return &upd, nil
}
