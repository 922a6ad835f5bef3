package repository

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// MemoryStore implementa clinic.Store inteiro em memória. Serve os testes
// e o modo de desenvolvimento sem Postgres. Falhas por coleção podem ser
// injetadas para exercitar o caminho de cache obsoleto e de cascata parcial.
type MemoryStore struct {
	mu sync.Mutex

	users         []models.User
	rooms         []models.Room
	allocations   []models.Allocation
	inventory     []models.InventoryItem
	loans         []models.Loan
	payments      []models.Payment
	patients      []models.Patient
	events        []models.ClinicEvent
	registrations []models.EventRegistration
	documents     []models.Document
	transactions  []models.FinancialTransaction
	categories    []models.FinancialCategory
	settings      *models.SystemSettings

	errs map[string]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{errs: map[string]error{}}
}

// FailCollection força todas as operações da coleção a devolver err.
// Passar err nil limpa a falha.
func (s *MemoryStore) FailCollection(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, name)
		return
	}
	s.errs[name] = err
}

func (s *MemoryStore) Users() clinic.Collection[models.User] {
	return memCollection[models.User]{s: s, name: "users", rows: &s.users}
}

func (s *MemoryStore) Rooms() clinic.Collection[models.Room] {
	return memCollection[models.Room]{s: s, name: "rooms", rows: &s.rooms}
}

func (s *MemoryStore) Allocations() clinic.Collection[models.Allocation] {
	return memCollection[models.Allocation]{s: s, name: "allocations", rows: &s.allocations}
}

func (s *MemoryStore) Inventory() clinic.Collection[models.InventoryItem] {
	return memCollection[models.InventoryItem]{s: s, name: "inventory", rows: &s.inventory}
}

func (s *MemoryStore) Loans() clinic.Collection[models.Loan] {
	return memCollection[models.Loan]{s: s, name: "loans", rows: &s.loans}
}

func (s *MemoryStore) Payments() clinic.Collection[models.Payment] {
	return memCollection[models.Payment]{s: s, name: "payments", rows: &s.payments}
}

func (s *MemoryStore) Patients() clinic.Collection[models.Patient] {
	return memCollection[models.Patient]{s: s, name: "patients", rows: &s.patients}
}

func (s *MemoryStore) Events() clinic.Collection[models.ClinicEvent] {
	return memCollection[models.ClinicEvent]{s: s, name: "events", rows: &s.events}
}

func (s *MemoryStore) Registrations() clinic.Collection[models.EventRegistration] {
	return memCollection[models.EventRegistration]{s: s, name: "registrations", rows: &s.registrations}
}

func (s *MemoryStore) Documents() clinic.Collection[models.Document] {
	return memCollection[models.Document]{s: s, name: "documents", rows: &s.documents}
}

func (s *MemoryStore) Transactions() clinic.Collection[models.FinancialTransaction] {
	return memCollection[models.FinancialTransaction]{s: s, name: "transactions", rows: &s.transactions}
}

func (s *MemoryStore) Categories() clinic.Collection[models.FinancialCategory] {
	return memCollection[models.FinancialCategory]{s: s, name: "categories", rows: &s.categories}
}

func (s *MemoryStore) Settings() clinic.SettingsCollection {
	return memSettings{s: s}
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.errs["users"]; err != nil {
		return nil, err
	}
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, clinic.ErrNotFound
}

// -------- Coleção genérica --------

type memCollection[T any] struct {
	s    *MemoryStore
	name string
	rows *[]T
}

func (c memCollection[T]) SelectAll(ctx context.Context) ([]T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs[c.name]; err != nil {
		return nil, err
	}
	out := make([]T, len(*c.rows))
	copy(out, *c.rows)
	return out, nil
}

func (c memCollection[T]) Insert(ctx context.Context, rec *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs[c.name]; err != nil {
		return err
	}
	id := recordID(rec)
	for i := range *c.rows {
		if recordID(&(*c.rows)[i]) == id {
			return clinic.ErrDuplicate
		}
	}
	*c.rows = append(*c.rows, *rec)
	return nil
}

func (c memCollection[T]) Save(ctx context.Context, rec *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs[c.name]; err != nil {
		return err
	}
	id := recordID(rec)
	for i := range *c.rows {
		if recordID(&(*c.rows)[i]) == id {
			(*c.rows)[i] = *rec
			return nil
		}
	}
	return clinic.ErrNotFound
}

func (c memCollection[T]) DeleteByID(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs[c.name]; err != nil {
		return err
	}
	kept := (*c.rows)[:0]
	for i := range *c.rows {
		if recordID(&(*c.rows)[i]) != id {
			kept = append(kept, (*c.rows)[i])
		}
	}
	*c.rows = kept
	return nil
}

func (c memCollection[T]) DeleteBy(ctx context.Context, column string, value string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs[c.name]; err != nil {
		return err
	}
	kept := (*c.rows)[:0]
	for i := range *c.rows {
		if fieldByColumn(&(*c.rows)[i], column) != value {
			kept = append(kept, (*c.rows)[i])
		}
	}
	*c.rows = kept
	return nil
}

// -------- Singleton de configurações --------

type memSettings struct {
	s *MemoryStore
}

func (c memSettings) Get(ctx context.Context) (*models.SystemSettings, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs["settings"]; err != nil {
		return nil, err
	}
	if c.s.settings == nil {
		return nil, clinic.ErrNotFound
	}
	out := *c.s.settings
	return &out, nil
}

func (c memSettings) Upsert(ctx context.Context, settings *models.SystemSettings) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := c.s.errs["settings"]; err != nil {
		return err
	}
	cp := *settings
	c.s.settings = &cp
	return nil
}

// -------- Reflexão sobre os registros --------

func recordID(rec any) string {
	return reflect.ValueOf(rec).Elem().FieldByName("ID").String()
}

// fieldByColumn resolve a coluna snake_case ("room_id") para o campo
// correspondente do struct ("RoomID") e devolve seu valor como string.
func fieldByColumn(rec any, column string) string {
	want := strings.ReplaceAll(column, "_", "")
	v := reflect.ValueOf(rec).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, want) {
			f := v.Field(i)
			if f.Kind() == reflect.Pointer {
				if f.IsNil() {
					return ""
				}
				f = f.Elem()
			}
			if f.Kind() == reflect.String {
				return f.String()
			}
		}
	}
	return ""
}
