package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

func newFixture(t *testing.T) (*repository.MemoryStore, *cache.Cache) {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())

	require.NoError(t, store.Payments().Insert(context.Background(), &models.Payment{
		ID: "p1", UserID: "u1", Amount: 350, DueDate: "2025-03-10", Status: clinic.PaymentPending,
	}))
	c.LoadAll(context.Background())
	return store, c
}

func TestConfirm_PendingToPaid(t *testing.T) {
	store, c := newFixture(t)
	uc := NewConfirm(store, c, nil)

	updated, err := uc.Execute(context.Background(), "p1", "2025-03-08")
	require.NoError(t, err)

	assert.Equal(t, clinic.PaymentPaid, updated.Status)
	assert.Equal(t, "2025-03-08", updated.PaidDate)
}

func TestConfirm_SecondConfirmRejected(t *testing.T) {
	store, c := newFixture(t)
	uc := NewConfirm(store, c, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "p1", "")
	require.NoError(t, err)

	// transição é única: PAID não volta nem reconfirma
	_, err = uc.Execute(ctx, "p1", "2025-03-09")
	assert.True(t, httperr.IsBusiness(err, "payment_already_paid"))
}

func TestConfirm_DefaultPaidDateIsToday(t *testing.T) {
	store, c := newFixture(t)
	uc := NewConfirm(store, c, nil)

	updated, err := uc.Execute(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Equal(t, timezone.Today(), updated.PaidDate)
}

func TestConfirm_UnknownPayment(t *testing.T) {
	store, c := newFixture(t)
	uc := NewConfirm(store, c, nil)

	_, err := uc.Execute(context.Background(), "ghost", "")
	assert.True(t, httperr.IsBusiness(err, "payment_not_found"))
}
