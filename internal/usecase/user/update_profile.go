package user

import (
	"context"
	"strings"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// UpdateProfileInput são os campos que o próprio usuário pode editar.
// Papel, e-mail e status ficam de fora: só o caminho de admin mexe neles.
type UpdateProfileInput struct {
	Name      string
	Address   string
	Phone     string
	Specialty string
}

type UpdateProfile struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewUpdateProfile(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{store: store, cache: c, audit: audit}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness("missing_name")
	}

	snap := uc.cache.Snapshot()
	existing := snap.UserByID(userID)
	if existing == nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	updated := *existing
	updated.Name = name
	updated.Address = in.Address
	updated.Phone = in.Phone
	updated.Specialty = in.Specialty

	if err := uc.store.Users().Save(ctx, &updated); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &updated.ID,
	})

	return &updated, nil
}
