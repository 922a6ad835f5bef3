package cache

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// Cache guarda o conteúdo COMPLETO de cada coleção em memória.
// É a única fonte que o resto da aplicação lê. Nunca é remendado
// incrementalmente: toda mutação termina chamando LoadAll de novo,
// e cada coleção é substituída por inteiro.
type Cache struct {
	store clinic.Store
	log   *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func New(store clinic.Store, log *zap.Logger) *Cache {
	return &Cache{
		store: store,
		log:   log,
		snap: Snapshot{
			// Fallbacks para a UI nunca abrir vazia; só em memória.
			Categories: clinic.DefaultCategories(),
			Settings:   DefaultSettings(),
		},
	}
}

func DefaultSettings() models.SystemSettings {
	return models.SystemSettings{
		ID:   "settings",
		Name: "ClinicFlow",
	}
}

// LoadAll dispara uma leitura por coleção, em paralelo, e substitui cada
// fatia pelo resultado. Falha de leitura de UMA coleção mantém o valor
// anterior daquela coleção (nada de merge parcial) e não aborta as demais;
// o erro é apenas logado. Por isso não há retorno de erro.
func (c *Cache) LoadAll(ctx context.Context) {
	var (
		wg   sync.WaitGroup
		next Snapshot
		got  struct {
			users, rooms, allocations, inventory, loans, payments,
			patients, events, registrations, documents, transactions,
			categories, settings bool
		}
	)

	fetch(ctx, &wg, c.log, "users", c.store.Users().SelectAll, &next.Users, &got.users)
	fetch(ctx, &wg, c.log, "rooms", c.store.Rooms().SelectAll, &next.Rooms, &got.rooms)
	fetch(ctx, &wg, c.log, "allocations", c.store.Allocations().SelectAll, &next.Allocations, &got.allocations)
	fetch(ctx, &wg, c.log, "inventory", c.store.Inventory().SelectAll, &next.Inventory, &got.inventory)
	fetch(ctx, &wg, c.log, "loans", c.store.Loans().SelectAll, &next.Loans, &got.loans)
	fetch(ctx, &wg, c.log, "payments", c.store.Payments().SelectAll, &next.Payments, &got.payments)
	fetch(ctx, &wg, c.log, "patients", c.store.Patients().SelectAll, &next.Patients, &got.patients)
	fetch(ctx, &wg, c.log, "events", c.store.Events().SelectAll, &next.Events, &got.events)
	fetch(ctx, &wg, c.log, "registrations", c.store.Registrations().SelectAll, &next.Registrations, &got.registrations)
	fetch(ctx, &wg, c.log, "documents", c.store.Documents().SelectAll, &next.Documents, &got.documents)
	fetch(ctx, &wg, c.log, "transactions", c.store.Transactions().SelectAll, &next.Transactions, &got.transactions)
	fetch(ctx, &wg, c.log, "categories", c.store.Categories().SelectAll, &next.Categories, &got.categories)

	wg.Add(1)
	go func() {
		defer wg.Done()
		s, err := c.store.Settings().Get(ctx)
		if err != nil {
			if errors.Is(err, clinic.ErrNotFound) {
				// Ausência do singleton não é falha: valem os padrões.
				next.Settings = DefaultSettings()
				got.settings = true
				return
			}
			c.log.Warn("cache: fetch failed",
				zap.String("collection", "settings"),
				zap.Error(err),
			)
			return
		}
		next.Settings = *s
		got.settings = true
	}()

	wg.Wait()

	// Coleção remota vazia de categorias cai no conjunto padrão.
	if got.categories && len(next.Categories) == 0 {
		next.Categories = clinic.DefaultCategories()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	applySlice(&c.snap.Users, next.Users, got.users)
	applySlice(&c.snap.Rooms, next.Rooms, got.rooms)
	applySlice(&c.snap.Allocations, next.Allocations, got.allocations)
	applySlice(&c.snap.Inventory, next.Inventory, got.inventory)
	applySlice(&c.snap.Loans, next.Loans, got.loans)
	applySlice(&c.snap.Payments, next.Payments, got.payments)
	applySlice(&c.snap.Patients, next.Patients, got.patients)
	applySlice(&c.snap.Events, next.Events, got.events)
	applySlice(&c.snap.Registrations, next.Registrations, got.registrations)
	applySlice(&c.snap.Documents, next.Documents, got.documents)
	applySlice(&c.snap.Transactions, next.Transactions, got.transactions)
	applySlice(&c.snap.Categories, next.Categories, got.categories)
	if got.settings {
		c.snap.Settings = next.Settings
	}
}

// Snapshot devolve a visão corrente. As fatias são compartilhadas e
// tratadas como somente-leitura: quem muta, muta via store + LoadAll.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func fetch[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	log *zap.Logger,
	collection string,
	selectAll func(context.Context) ([]T, error),
	out *[]T,
	ok *bool,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		rows, err := selectAll(ctx)
		if err != nil {
			log.Warn("cache: fetch failed",
				zap.String("collection", collection),
				zap.Error(err),
			)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		*out = rows
		*ok = true
	}()
}

func applySlice[T any](dst *[]T, src []T, ok bool) {
	if ok {
		*dst = src
	}
}
