package payment

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

type Confirm struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewConfirm(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *Confirm {
	return &Confirm{store: store, cache: c, audit: audit}
}

// Execute confirma um pagamento: PENDING -> PAID, transição única e sem
// volta. paidDate recebe a data informada ou a data corrente.
func (uc *Confirm) Execute(ctx context.Context, paymentID, paidDate string) (*models.Payment, error) {
	snap := uc.cache.Snapshot()

	p := snap.PaymentByID(paymentID)
	if p == nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if p.Status == clinic.PaymentPaid {
		return nil, httperr.ErrBusiness("payment_already_paid")
	}

	if paidDate == "" {
		paidDate = timezone.Today()
	}

	upd := *p
	upd.Status = clinic.PaymentPaid
	upd.PaidDate = paidDate

	if err := uc.store.Payments().Save(ctx, &upd); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "payment_confirmed",
		Entity:   "payment",
		EntityID: &upd.ID,
	})

	return &upd, nil
}
