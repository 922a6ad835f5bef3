package clinic

import (
	"context"
	"errors"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Collection é a fatia do gateway remoto para uma coleção nomeada.
// Sem transações, sem batch, sem join no servidor: toda agregação
// acontece do lado de cá, sobre o cache.
type Collection[T any] interface {
	// SelectAll devolve a coleção inteira, na ordem do servidor.
	SelectAll(ctx context.Context) ([]T, error)

	// Insert grava um registro novo; o id já vem preenchido pelo chamador.
	Insert(ctx context.Context, rec *T) error

	// Save atualiza o registro inteiro pelo id.
	Save(ctx context.Context, rec *T) error

	DeleteByID(ctx context.Context, id string) error

	// DeleteBy remove todos os registros com a coluna igual ao valor
	// (cascatas: allocations por room_id, registrations por event_id).
	DeleteBy(ctx context.Context, column string, value string) error
}

// SettingsCollection é o singleton de configurações do sistema.
type SettingsCollection interface {
	Get(ctx context.Context) (*models.SystemSettings, error)
	Upsert(ctx context.Context, s *models.SystemSettings) error
}

// Store agrupa as coleções do armazenamento remoto.
type Store interface {
	Users() Collection[models.User]
	Rooms() Collection[models.Room]
	Allocations() Collection[models.Allocation]
	Inventory() Collection[models.InventoryItem]
	Loans() Collection[models.Loan]
	Payments() Collection[models.Payment]
	Patients() Collection[models.Patient]
	Events() Collection[models.ClinicEvent]
	Registrations() Collection[models.EventRegistration]
	Documents() Collection[models.Document]
	Transactions() Collection[models.FinancialTransaction]
	Categories() Collection[models.FinancialCategory]
	Settings() SettingsCollection

	// FindUserByEmail resolve o vínculo sessão -> perfil (match exato).
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}
