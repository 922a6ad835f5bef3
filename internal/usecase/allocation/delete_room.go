package allocation

import (
	"context"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
)

type DeleteRoom struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDeleteRoom(store clinic.Store, c *cache.Cache, audit *audit.Dispatcher) *DeleteRoom {
	return &DeleteRoom{store: store, cache: c, audit: audit}
}

// Execute apaga a sala em cascata: primeiro as alocações que a
// referenciam, depois a própria sala. São duas chamadas independentes,
// sem transação nem compensação: se a segunda falhar, as alocações já
// terão sumido e o erro sobe assim mesmo.
func (uc *DeleteRoom) Execute(ctx context.Context, roomID string) error {
	if err := uc.store.Allocations().DeleteBy(ctx, "room_id", roomID); err != nil {
		return err
	}

	err := uc.store.Rooms().DeleteByID(ctx, roomID)

	// Mesmo com falha ambígua, ressincroniza a visão com o servidor.
	uc.cache.LoadAll(ctx)

	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "room_deleted",
		Entity:   "room",
		EntityID: &roomID,
	})

	return nil
}
