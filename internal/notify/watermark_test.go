package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

func seed(t *testing.T) (*repository.MemoryStore, *cache.Cache, *models.User) {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	ctx := context.Background()

	user := &models.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: clinic.RoleProfessional}
	require.NoError(t, store.Users().Insert(ctx, user))
	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "u2", Name: "Bia", Email: "bia@x.com", Role: clinic.RoleProfessional}))

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	other := "u2"

	docs := []models.Document{
		{ID: "d1", Title: "Aviso geral", LinkURL: "https://x/1", CreatedAt: base},
		{ID: "d2", Title: "Só para Ana", LinkURL: "https://x/2", TargetUserID: &user.ID, CreatedAt: base.Add(time.Hour)},
		{ID: "d3", Title: "Só para Bia", LinkURL: "https://x/3", TargetUserID: &other, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range docs {
		require.NoError(t, store.Documents().Insert(ctx, &docs[i]))
	}

	payments := []models.Payment{
		{ID: "p1", UserID: "u1", Amount: 100, DueDate: "2025-03-10", Status: clinic.PaymentPending, CreatedAt: base},
		{ID: "p2", UserID: "u2", Amount: 100, DueDate: "2025-03-10", Status: clinic.PaymentPending, CreatedAt: base},
	}
	for i := range payments {
		require.NoError(t, store.Payments().Insert(ctx, &payments[i]))
	}

	c.LoadAll(ctx)
	return store, c, user
}

func TestUnread_ScopedByVisibility(t *testing.T) {
	_, c, user := seed(t)
	counter := NewCounter(c, NewMemoryWatermarkStore())

	counts, err := counter.Unread(context.Background(), user)
	require.NoError(t, err)

	// sem marca d'água tudo visível conta: geral + endereçado a ela,
	// nunca o documento da colega
	assert.Equal(t, 2, counts.Documents)
	assert.Equal(t, 1, counts.Payments)
}

func TestMarkRead_AdvancesWatermarkAndZeroes(t *testing.T) {
	store, c, user := seed(t)
	counter := NewCounter(c, NewMemoryWatermarkStore())
	ctx := context.Background()

	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, counter.MarkRead(ctx, user, KindDocuments, now))

	counts, err := counter.Unread(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, counts.Documents)
	assert.Equal(t, 1, counts.Payments, "cada tipo tem marca própria")

	// documento novo estritamente depois da marca volta a contar
	require.NoError(t, store.Documents().Insert(ctx, &models.Document{
		ID: "d4", Title: "Novo aviso", LinkURL: "https://x/4", CreatedAt: now.Add(time.Minute),
	}))
	c.LoadAll(ctx)

	counts, err = counter.Unread(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Documents)
}

func TestMarkRead_UnknownKind(t *testing.T) {
	_, c, user := seed(t)
	counter := NewCounter(c, NewMemoryWatermarkStore())

	err := counter.MarkRead(context.Background(), user, "loans", time.Now())
	assert.Error(t, err)
}

func TestWatermarkStore_PerUserPerKind(t *testing.T) {
	store := NewMemoryWatermarkStore()
	ctx := context.Background()

	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Set(ctx, KindDocuments, "u1", t1))
	require.NoError(t, store.Set(ctx, KindPayments, "u1", t2))

	got, err := store.Get(ctx, KindDocuments, "u1")
	require.NoError(t, err)
	assert.True(t, got.Equal(t1))

	got, err = store.Get(ctx, KindPayments, "u1")
	require.NoError(t, err)
	assert.True(t, got.Equal(t2))

	// usuário sem marca: zero value = nunca visitou
	got, err = store.Get(ctx, KindDocuments, "u2")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
