package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/identity"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
)

// fakeSignUpClient simula o cliente de privilégio limitado: só cria
// contas e rejeita e-mails repetidos.
type fakeSignUpClient struct {
	accounts map[string]string // email -> id
}

func newFakeSignUpClient() *fakeSignUpClient {
	return &fakeSignUpClient{accounts: map[string]string{}}
}

func (f *fakeSignUpClient) SignUp(_ context.Context, email, _ string) (*identity.Account, error) {
	if _, ok := f.accounts[email]; ok {
		return nil, identity.ErrEmailTaken
	}
	id := uuid.NewString()
	f.accounts[email] = id
	return &identity.Account{ID: id, Email: email}, nil
}

func TestProvision_CreatesAccountThenProfile(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	c.LoadAll(context.Background())
	signup := newFakeSignUpClient()

	uc := NewProvision(signup, store, c, nil)

	out, err := uc.Execute(context.Background(), ProvisionInput{
		Name:      "Dra. Ana",
		Email:     "Ana@Clinica.com",
		Role:      clinic.RoleProfessional,
		Specialty: "Fisioterapia",
	})
	require.NoError(t, err)

	assert.Len(t, out.TemporaryPassword, 12)
	assert.Equal(t, "ana@clinica.com", out.User.Email, "e-mail normalizado")
	assert.True(t, out.User.IsActive)

	// o perfil usa o id emitido pelo provedor de identidade
	assert.Equal(t, signup.accounts["ana@clinica.com"], out.User.ID)

	snap := c.Snapshot()
	require.Len(t, snap.Users, 1)
}

func TestProvision_RejectsDuplicateEmail(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	c.LoadAll(context.Background())
	signup := newFakeSignUpClient()

	uc := NewProvision(signup, store, c, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ProvisionInput{Name: "Ana", Email: "ana@x.com", Role: clinic.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, ProvisionInput{Name: "Outra Ana", Email: "ana@x.com", Role: clinic.RoleProfessional})
	assert.True(t, httperr.IsBusiness(err, "email_already_registered"))
}

func TestProvision_Validation(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	uc := NewProvision(newFakeSignUpClient(), store, c, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ProvisionInput{Name: "", Email: "a@x.com", Role: clinic.RoleAdmin})
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))

	_, err = uc.Execute(ctx, ProvisionInput{Name: "Ana", Email: "a@x.com", Role: "SUPERVISOR"})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}

func TestToggleStatus_Flips(t *testing.T) {
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())
	signup := newFakeSignUpClient()
	ctx := context.Background()

	provision := NewProvision(signup, store, c, nil)
	out, err := provision.Execute(ctx, ProvisionInput{Name: "Ana", Email: "ana@x.com", Role: clinic.RoleProfessional})
	require.NoError(t, err)

	uc := NewToggleStatus(store, c, nil)

	updated, err := uc.Execute(ctx, out.User.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	updated, err = uc.Execute(ctx, out.User.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = uc.Execute(ctx, "ghost")
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}
