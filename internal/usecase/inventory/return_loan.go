package inventory

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

type ReturnLoan struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewReturnLoan(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *ReturnLoan {
	return &ReturnLoan{store: store, cache: c, audit: audit}
}

// Execute devolve um empréstimo: marca RETURNED com o horário da
// devolução e incrementa a disponibilidade do item correspondente.
// O item é localizado pelo NOME gravado no empréstimo; se o item foi
// renomeado desde então, o estoque simplesmente não é reposto.
func (uc *ReturnLoan) Execute(ctx context.Context, loanID string) (*models.Loan, error) {
	snap := uc.cache.Snapshot()

	loan := snap.LoanByID(loanID)
	if loan == nil {
		return nil, httperr.ErrBusiness("loan_not_found")
	}
	if loan.Status != clinic.LoanActive {
		return nil, httperr.ErrBusiness("loan_already_returned")
	}

	now := timezone.Now()
	upd := *loan
	upd.Status = clinic.LoanReturned
	upd.ReturnDate = &now

	if err := uc.store.Loans().Save(ctx, &upd); err != nil {
		return nil, err
	}

	if item := snap.ItemByName(loan.ItemName); item != nil {
		restocked := *item
		restocked.AvailableQuantity += loan.Quantity
		if err := uc.store.Inventory().Save(ctx, &restocked); err != nil {
			// Empréstimo já está RETURNED; estoque ficou para trás.
			uc.cache.LoadAll(ctx)
			return nil, err
		}
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &loan.UserID,
		Action:   "loan_returned",
		Entity:   "loan",
		EntityID: &loan.ID,
	})

	return &upd, nil
}
