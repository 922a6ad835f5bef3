package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// GormStore implementa clinic.Store sobre Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// -------- Coleções --------

func (s *GormStore) Users() clinic.Collection[models.User] {
	return gormCollection[models.User]{db: s.db}
}

func (s *GormStore) Rooms() clinic.Collection[models.Room] {
	return gormCollection[models.Room]{db: s.db}
}

func (s *GormStore) Allocations() clinic.Collection[models.Allocation] {
	return gormCollection[models.Allocation]{db: s.db}
}

func (s *GormStore) Inventory() clinic.Collection[models.InventoryItem] {
	return gormCollection[models.InventoryItem]{db: s.db}
}

func (s *GormStore) Loans() clinic.Collection[models.Loan] {
	return gormCollection[models.Loan]{db: s.db}
}

func (s *GormStore) Payments() clinic.Collection[models.Payment] {
	return gormCollection[models.Payment]{db: s.db}
}

func (s *GormStore) Patients() clinic.Collection[models.Patient] {
	return gormCollection[models.Patient]{db: s.db}
}

func (s *GormStore) Events() clinic.Collection[models.ClinicEvent] {
	return gormCollection[models.ClinicEvent]{db: s.db}
}

func (s *GormStore) Registrations() clinic.Collection[models.EventRegistration] {
	return gormCollection[models.EventRegistration]{db: s.db}
}

func (s *GormStore) Documents() clinic.Collection[models.Document] {
	return gormCollection[models.Document]{db: s.db}
}

func (s *GormStore) Transactions() clinic.Collection[models.FinancialTransaction] {
	return gormCollection[models.FinancialTransaction]{db: s.db}
}

func (s *GormStore) Categories() clinic.Collection[models.FinancialCategory] {
	return gormCollection[models.FinancialCategory]{db: s.db}
}

func (s *GormStore) Settings() clinic.SettingsCollection {
	return gormSettings{db: s.db}
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clinic.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// -------- Coleção genérica --------

type gormCollection[T any] struct {
	db *gorm.DB
}

func (c gormCollection[T]) SelectAll(ctx context.Context) ([]T, error) {
	var rows []T
	if err := c.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (c gormCollection[T]) Insert(ctx context.Context, rec *T) error {
	err := c.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return clinic.ErrDuplicate
	}
	return err
}

func (c gormCollection[T]) Save(ctx context.Context, rec *T) error {
	return c.db.WithContext(ctx).Save(rec).Error
}

func (c gormCollection[T]) DeleteByID(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

func (c gormCollection[T]) DeleteBy(ctx context.Context, column string, value string) error {
	return c.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", column), value).
		Delete(new(T)).Error
}

// -------- Singleton de configurações --------

type gormSettings struct {
	db *gorm.DB
}

func (c gormSettings) Get(ctx context.Context) (*models.SystemSettings, error) {
	var s models.SystemSettings
	if err := c.db.WithContext(ctx).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clinic.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (c gormSettings) Upsert(ctx context.Context, s *models.SystemSettings) error {
	return c.db.WithContext(ctx).Save(s).Error
}
