package inventory

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

type UpdateItemInput struct {
	ID            string
	Name          string
	TotalQuantity int
}

type UpdateItem struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewUpdateItem(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *UpdateItem {
	return &UpdateItem{store: store, cache: c, audit: audit}
}

// Execute edita nome/total de um item e recalcula a disponibilidade a
// partir dos empréstimos ATIVOS que casam com o NOVO nome, com piso em
// zero. Renomear o item NÃO reescreve empréstimos antigos: eles seguem
// apontando para o nome antigo (fragilidade conhecida, preservada).
func (uc *UpdateItem) Execute(ctx context.Context, in UpdateItemInput) (*models.InventoryItem, error) {
	if in.TotalQuantity < 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}

	snap := uc.cache.Snapshot()

	item := snap.ItemByID(in.ID)
	if item == nil {
		return nil, httperr.ErrBusiness("item_not_found")
	}

	upd := *item
	upd.Name = in.Name
	upd.TotalQuantity = in.TotalQuantity
	upd.AvailableQuantity = clinic.RecomputeAvailable(in.TotalQuantity, snap.Loans, in.Name)

	if err := uc.store.Inventory().Save(ctx, &upd); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "inventory_item_updated",
		Entity:   "inventory_item",
		EntityID: &upd.ID,
	})

	return &upd, nil
}
