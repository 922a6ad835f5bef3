package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

func TestLoadAll_ReplacesCollectionsWholesale(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c := New(store, zap.NewNop())

	require.NoError(t, store.Rooms().Insert(ctx, &models.Room{ID: "r1", Name: "Sala 1"}))
	require.NoError(t, store.Rooms().Insert(ctx, &models.Room{ID: "r2", Name: "Sala 2"}))

	c.LoadAll(ctx)
	assert.Len(t, c.Snapshot().Rooms, 2)

	// remoção no servidor some do espelho na próxima carga: substituição
	// por inteiro, sem merge
	require.NoError(t, store.Rooms().DeleteByID(ctx, "r1"))
	c.LoadAll(ctx)

	rooms := c.Snapshot().Rooms
	require.Len(t, rooms, 1)
	assert.Equal(t, "r2", rooms[0].ID)
}

func TestLoadAll_FailedCollectionKeepsPriorValue(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c := New(store, zap.NewNop())

	require.NoError(t, store.Rooms().Insert(ctx, &models.Room{ID: "r1", Name: "Sala 1"}))
	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: clinic.RoleProfessional}))
	c.LoadAll(ctx)

	// a coleção de salas passa a falhar; usuários seguem servidos
	store.FailCollection("rooms", errors.New("timeout"))
	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "u2", Name: "Bia", Email: "bia@x.com", Role: clinic.RoleProfessional}))
	c.LoadAll(ctx)

	snap := c.Snapshot()
	assert.Len(t, snap.Rooms, 1, "valor anterior preservado para a coleção que falhou")
	assert.Len(t, snap.Users, 2, "as demais coleções continuam atualizando")

	// falha resolvida: a próxima carga volta a substituir
	store.FailCollection("rooms", nil)
	require.NoError(t, store.Rooms().DeleteByID(ctx, "r1"))
	c.LoadAll(ctx)
	assert.Empty(t, c.Snapshot().Rooms)
}

func TestLoadAll_EmptyCategoriesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c := New(store, zap.NewNop())

	c.LoadAll(ctx)

	cats := c.Snapshot().Categories
	assert.Len(t, cats, len(clinic.DefaultIncomeCategories)+len(clinic.DefaultExpenseCategories))

	// com uma categoria real, o fallback deixa de valer
	require.NoError(t, store.Categories().Insert(ctx, &models.FinancialCategory{ID: "c1", Name: "Consultas", Type: clinic.TransactionIncome}))
	c.LoadAll(ctx)
	assert.Len(t, c.Snapshot().Categories, 1)
}

func TestLoadAll_MissingSettingsUseDefaults(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c := New(store, zap.NewNop())

	c.LoadAll(ctx)
	assert.Equal(t, DefaultSettings(), c.Snapshot().Settings)

	require.NoError(t, store.Settings().Upsert(ctx, &models.SystemSettings{ID: "settings", Name: "Clínica Viver"}))
	c.LoadAll(ctx)
	assert.Equal(t, "Clínica Viver", c.Snapshot().Settings.Name)
}

func TestSnapshot_StartsWithInMemoryDefaults(t *testing.T) {
	store := repository.NewMemoryStore()
	c := New(store, zap.NewNop())

	// antes de qualquer LoadAll a UI já tem categorias e settings
	snap := c.Snapshot()
	assert.NotEmpty(t, snap.Categories)
	assert.Equal(t, "ClinicFlow", snap.Settings.Name)
}
