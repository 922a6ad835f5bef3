package user

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

type ToggleStatus struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewToggleStatus(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *ToggleStatus {
	return &ToggleStatus{store: store, cache: c, audit: audit}
}

func (uc *ToggleStatus) Execute(ctx context.Context, userID string) (*models.User, error) {
	snap := uc.cache.Snapshot()

	u := snap.UserByID(userID)
	if u == nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	upd := *u
	upd.IsActive = !upd.IsActive

	if err := uc.store.Users().Save(ctx, &upd); err != nil {
		return nil, err
	}

	uc.cache.LoadAll(ctx)

	action := "user_deactivated"
	if upd.IsActive {
		action = "user_activated"
	}
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "user",
		EntityID: &upd.ID,
	})

	return &upd, nil
}
