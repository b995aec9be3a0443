// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/albanrr9/PharmacyOnline/internal/config"
	"github.com/albanrr9/PharmacyOnline/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Prescription{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedInitialData creates the demo accounts and catalog a fresh deployment
// starts with: one admin, one pharmacy, one customer and the pharmacy's
// opening stock.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return nil
	}

	users := []struct {
		user     models.User
		password string
	}{
		{
			user: models.User{
				FullName: "Admin User",
				Email:    "admin@pharmacy.com",
				Phone:    "+1234567890",
				Role:     models.RoleAdmin,
				Address:  "123 Admin St, City, State",
			},
			password: "admin123!@#",
		},
		{
			user: models.User{
				FullName: "MediCare Pharmacy",
				Email:    "medicare@pharmacy.com",
				Phone:    "+1234567891",
				Role:     models.RolePharmacy,
				Address:  "456 Health Ave, City, State",
			},
			password: "pharmacy123!@#",
		},
		{
			user: models.User{
				FullName: "John Doe",
				Email:    "john@example.com",
				Phone:    "+1234567893",
				Role:     models.RoleCustomer,
				Address:  "321 Customer Lane, City, State",
			},
			password: "customer123!@#",
		},
	}

	var pharmacy *models.User
	for i := range users {
		u := users[i].user
		if err := u.SetPassword(users[i].password); err != nil {
			return fmt.Errorf("failed to set password for %s: %w", u.Email, err)
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		if u.Role == models.RolePharmacy {
			pharmacy = &u
		}
	}

	products := []models.Product{
		{
			PharmacyID:           pharmacy.ID,
			Name:                 "Paracetamol 500mg",
			Description:          "Pain relief and fever reducer",
			Price:                5.99,
			RequiresPrescription: false,
			Stock:                100,
		},
		{
			PharmacyID:           pharmacy.ID,
			Name:                 "Amoxicillin 250mg",
			Description:          "Antibiotic for bacterial infections",
			Price:                12.99,
			RequiresPrescription: true,
			Stock:                50,
		},
		{
			PharmacyID:           pharmacy.ID,
			Name:                 "Ibuprofen 400mg",
			Description:          "Anti-inflammatory pain reliever",
			Price:                7.50,
			RequiresPrescription: false,
			Stock:                75,
		},
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
