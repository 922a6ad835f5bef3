package db

import (
	"log"
	"time"

	"github.com/ClinicFlowBR/clinicflow/internal/config"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Allocation{},
		&models.InventoryItem{},
		&models.Loan{},
		&models.Payment{},
		&models.Patient{},
		&models.ClinicEvent{},
		&models.EventRegistration{},
		&models.Document{},
		&models.FinancialTransaction{},
		&models.FinancialCategory{},
		&models.SystemSettings{},
		&models.IdentityAccount{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
