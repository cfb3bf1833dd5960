package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/config"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Location{},
		&entity.Voucher{},
		&entity.VoucherRedemption{},
		&entity.PassPackage{},
		&entity.Booking{},
		&entity.PaymentWebhookEvent{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (locations,
// voucher catalog, admin user).
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	locations := []entity.Location{
		{Name: "Bukit Panjang", Slug: "bukit-panjang", Address: "123 Bukit Panjang Plaza, Singapore 670123", HourlyRateCents: 2500, Seats: 40},
		{Name: "Kovan", Slug: "kovan", Address: "456 Kovan Road, Singapore 560456", HourlyRateCents: 3000, Seats: 30},
		{Name: "Ang Mo Kio", Slug: "ang-mo-kio", Address: "789 Ang Mo Kio Avenue 3, Singapore 560789", HourlyRateCents: 2800, Seats: 35},
	}

	for i := range locations {
		var existing entity.Location
		if err := db.Where("slug = ?", locations[i].Slug).First(&existing).Error; err != nil {
			locations[i].IsActive = true
			if err := db.Create(&locations[i]).Error; err != nil {
				log.Printf("Warning: failed to create location %s: %v", locations[i].Name, err)
			}
		}
	}

	expiry := time.Date(time.Now().Year(), 12, 31, 23, 59, 59, 0, time.UTC)
	vouchers := []entity.Voucher{
		{Code: "SAVE20", Description: "20% off your booking", DiscountType: enum.DiscountTypePercentage, DiscountValue: 20, ExpiresAt: expiry, MaxUsesPerUser: 3, MaxUsesTotal: 1000},
		{Code: "SAVE30", Description: "30% off your booking", DiscountType: enum.DiscountTypePercentage, DiscountValue: 30, ExpiresAt: expiry, MaxUsesPerUser: 3, MaxUsesTotal: 1000},
		{Code: "GET15OFF", Description: "$15 off your booking", DiscountType: enum.DiscountTypeFixedAmount, DiscountValue: 1500, ExpiresAt: expiry, MaxUsesPerUser: 1, MaxUsesTotal: 500},
	}

	for i := range vouchers {
		var existing entity.Voucher
		if err := db.Where("code = ?", vouchers[i].Code).First(&existing).Error; err != nil {
			vouchers[i].IsActive = true
			if err := db.Create(&vouchers[i]).Error; err != nil {
				log.Printf("Warning: failed to create voucher %s: %v", vouchers[i].Code, err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				adminUser := entity.User{
					ID:        uuid.New(),
					FirstName: firstName,
					LastName:  lastName,
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      entity.RoleAdmin,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
