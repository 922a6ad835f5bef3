package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/identity"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ProvisionInput struct {
	Name      string
	Email     string
	Role      string
	Specialty string
	Phone     string
	Address   string
}

type ProvisionOutput struct {
	User *models.User `json:"user"`

	// Senha temporária gerada; mostrada UMA vez ao admin e nunca
	// armazenada pela aplicação.
	TemporaryPassword string `json:"temporaryPassword"`
}

// ======================================================
// USE CASE
// ======================================================

type Provision struct {
	signup identity.SignUpClient
	store  clinic.Store
	cache  *cache.Cache
	audit  *audit.Dispatcher
}

func NewProvision(signup identity.SignUpClient, store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *Provision {
	return &Provision{signup: signup, store: store, cache: c, audit: audit}
}

// Execute cria um usuário em dois passos sequenciais: primeiro a conta
// no provedor de identidade (cliente de privilégio limitado, senha
// temporária gerada), depois o perfil usando o id emitido pelo provedor.
// Se o insert do perfil bater em violação de unicidade, cai para um
// update-by-id — acomodação de idempotência para provisionamentos
// repetidos.
func (uc *Provision) Execute(ctx context.Context, in ProvisionInput) (*ProvisionOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Name == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}

	role := in.Role
	if role != clinic.RoleAdmin && role != clinic.RoleProfessional {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	tempPassword := generateTemporaryPassword()

	account, err := uc.signup.SignUp(ctx, email, tempPassword)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, httperr.ErrBusiness("email_already_registered")
		}
		return nil, err
	}

	profile := &models.User{
		ID:        account.ID,
		Name:      in.Name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Address:   in.Address,
	}

	if err := uc.store.Users().Insert(ctx, profile); err != nil {
		if !errors.Is(err, clinic.ErrDuplicate) {
			return nil, err
		}
		if err := uc.store.Users().Save(ctx, profile); err != nil {
			return nil, err
		}
	}

	uc.cache.LoadAll(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "user_provisioned",
		Entity:   "user",
		EntityID: &profile.ID,
	})

	return &ProvisionOutput{
		User:              profile,
		TemporaryPassword: tempPassword,
	}, nil
}

func generateTemporaryPassword() string {
	// 12 primeiros caracteres de um UUID sem hífens
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:12]
}
