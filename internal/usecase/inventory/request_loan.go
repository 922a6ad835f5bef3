package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

type RequestLoan struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewRequestLoan(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *RequestLoan {
	return &RequestLoan{store: store, cache: c, audit: audit}
}

// Execute empresta uma unidade de um item: decrementa a disponibilidade
// (só quando > 0) e insere o empréstimo ATIVO referenciando o item pelo
// nome. Duas escritas sequenciais, sem rollback: se a segunda falhar o
// estoque fica decrementado e o erro é devolvido ao chamador.
func (uc *RequestLoan) Execute(ctx context.Context, userID, itemID string) (*models.Loan, error) {
	snap := uc.cache.Snapshot()

	item := snap.ItemByID(itemID)
	if item == nil {
		return nil, httperr.ErrBusiness("item_not_found")
	}
	if item.AvailableQuantity <= 0 {
		return nil, httperr.ErrBusiness("item_unavailable")
	}

	upd := *item
	upd.AvailableQuantity--
	if err := uc.store.Inventory().Save(ctx, &upd); err != nil {
		return nil, err
	}

	loan := &models.Loan{
		ID:          uuid.NewString(),
		UserID:      userID,
		ItemName:    item.Name,
		Quantity:    1,
		RequestDate: timezone.Now(),
		Status:      clinic.LoanActive,
	}

	if err := uc.store.Loans().Insert(ctx, loan); err != nil {
		uc.cache.LoadAll(ctx)
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "loan_requested",
		Entity:   "loan",
		EntityID: &loan.ID,
	})

	return loan, nil
}
