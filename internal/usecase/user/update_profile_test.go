package user

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
)

func TestUpdateProfile_EditsOwnFields(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u1", Name: "Ana", Email: "ana@x.com",
		Role: clinic.RoleProfessional, Specialty: "Fisioterapia", IsActive: true,
	}))
	c.LoadAll(ctx)

	uc := NewUpdateProfile(store, c, nil)

	updated, err := uc.Execute(ctx, "u1", UpdateProfileInput{
		Name:      "  Ana Souza ",
		Specialty: "Pilates Clínico",
		Phone:     "11 99999-0000",
		Address:   "Rua Nova, 10",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", updated.Name)
	assert.Equal(t, "Pilates Clínico", updated.Specialty)
	assert.Equal(t, "11 99999-0000", updated.Phone)
	assert.Equal(t, "Rua Nova, 10", updated.Address)

	snap := c.Snapshot()
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "Ana Souza", snap.Users[0].Name)
}

// O caminho de edição do próprio perfil não tem como mudar papel,
// e-mail ou status: esses campos sobrevivem intactos.
func TestUpdateProfile_RoleSurvivesSelfEdit(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u1", Name: "Ana", Email: "ana@x.com",
		Role: clinic.RoleProfessional, IsActive: true,
	}))
	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u2", Name: "Bruno", Email: "bruno@x.com",
		Role: clinic.RoleAdmin, IsActive: true,
	}))
	c.LoadAll(ctx)

	uc := NewUpdateProfile(store, c, nil)

	updated, err := uc.Execute(ctx, "u1", UpdateProfileInput{Name: "Ana Souza"})
	require.NoError(t, err)
	assert.Equal(t, clinic.RoleProfessional, updated.Role)
	assert.Equal(t, "ana@x.com", updated.Email)
	assert.True(t, updated.IsActive)

	updated, err = uc.Execute(ctx, "u2", UpdateProfileInput{Name: "Bruno Lima"})
	require.NoError(t, err)
	assert.Equal(t, clinic.RoleAdmin, updated.Role)
}

func TestUpdateProfile_RejectsBlankNameAndUnknownUser(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{
		ID: "u1", Name: "Ana", Email: "ana@x.com", Role: clinic.RoleProfessional, IsActive: true,
	}))
	c.LoadAll(ctx)

	uc := NewUpdateProfile(store, c, nil)

	_, err := uc.Execute(ctx, "u1", UpdateProfileInput{Name: "   "})
	assert.True(t, httperr.IsBusiness(err, "missing_name"))

	_, err = uc.Execute(ctx, "nao-existe", UpdateProfileInput{Name: "Alguém"})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}
