package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

type fixture struct {
	store *repository.MemoryStore
	cache *cache.Cache
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u1", Name: "Dra. Ana", Email: "ana@clinica.com", Role: clinic.RoleProfessional, IsActive: true,
	}))
	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u2", Name: "Dr. Caio", Email: "caio@clinica.com", Role: clinic.RoleProfessional, IsActive: true,
	}))
	require.NoError(t, store.Rooms().Insert(ctx, &models.Room{ID: "sala-1", Name: "Sala 1"}))
	require.NoError(t, store.Rooms().Insert(ctx, &models.Room{ID: "sala-2", Name: "Sala 2"}))

	c.LoadAll(ctx)
	return fixture{store: store, cache: c}
}

func TestCreate_HappyPath(t *testing.T) {
	fx := newFixture(t)
	uc := NewCreate(fx.store, fx.cache, nil)

	created, err := uc.Execute(context.Background(), CreateInput{
		UserID: "u1", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// a mutação termina com o espelho recarregado
	assert.Len(t, fx.cache.Snapshot().Allocations, 1)
}

func TestCreate_SlotUniquenessPerRoom(t *testing.T) {
	fx := newFixture(t)
	uc := NewCreate(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateInput{UserID: "u1", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	require.NoError(t, err)

	// mesma sala, mesmo dia/turno, outro profissional: rejeita sem gravar
	_, err = uc.Execute(ctx, CreateInput{UserID: "u2", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	assert.True(t, httperr.IsBusiness(err, "schedule_conflict"))
	assert.Len(t, fx.cache.Snapshot().Allocations, 1)

	// outra sala no mesmo horário passa
	_, err = uc.Execute(ctx, CreateInput{UserID: "u2", RoomID: "sala-2", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	require.NoError(t, err)

	// o turno liberado volta a aceitar depois da remoção
	allocs := fx.cache.Snapshot().Allocations
	del := NewDelete(fx.store, fx.cache, nil)
	require.NoError(t, del.Execute(ctx, allocs[0].ID))

	_, err = uc.Execute(ctx, CreateInput{UserID: "u2", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	fx := newFixture(t)
	uc := NewCreate(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateInput{UserID: "u1", RoomID: "sala-1", Day: "Domingo", Shift: "Manhã (08h-12h)"})
	assert.True(t, httperr.IsBusiness(err, "invalid_day_or_shift"))

	_, err = uc.Execute(ctx, CreateInput{UserID: "ghost", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))

	_, err = uc.Execute(ctx, CreateInput{UserID: "u1", RoomID: "ghost", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	assert.True(t, httperr.IsBusiness(err, "room_not_found"))
}

func TestDeleteRoom_PartialFailureLeavesOrphanState(t *testing.T) {
	fx := newFixture(t)
	create := NewCreate(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := create.Execute(ctx, CreateInput{UserID: "u1", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	require.NoError(t, err)

	// as alocações saem; a remoção da sala falha; nada é desfeito
	fx.store.FailCollection("rooms", errors.New("write failed"))

	uc := NewDeleteRoom(fx.store, fx.cache, nil)
	require.Error(t, uc.Execute(ctx, "sala-1"))

	fx.store.FailCollection("rooms", nil)
	fx.cache.LoadAll(ctx)

	snap := fx.cache.Snapshot()
	assert.Empty(t, snap.Allocations)
	assert.Len(t, snap.Rooms, 2, "sala sobrevive sem as alocações")
}

func TestDeleteRoom_CascadesAllocations(t *testing.T) {
	fx := newFixture(t)
	create := NewCreate(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := create.Execute(ctx, CreateInput{UserID: "u1", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateInput{UserID: "u2", RoomID: "sala-1", Day: "Terça-feira", Shift: "Tarde (13h-17h)"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateInput{UserID: "u2", RoomID: "sala-2", Day: "Terça-feira", Shift: "Tarde (13h-17h)"})
	require.NoError(t, err)

	uc := NewDeleteRoom(fx.store, fx.cache, nil)
	require.NoError(t, uc.Execute(ctx, "sala-1"))

	snap := fx.cache.Snapshot()
	assert.Len(t, snap.Rooms, 1)
	require.Len(t, snap.Allocations, 1)
	assert.Equal(t, "sala-2", snap.Allocations[0].RoomID)
}
