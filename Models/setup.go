package Models

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database handle. With DB_HOST set it connects to
// Postgres; otherwise it falls back to a local SQLite file for development.
// The handle is returned rather than stored in a package global so callers
// own its lifetime.
func Connect() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "stockpilot.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		sslmode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate runs schema migrations in dependency order and seeds the singleton
// settings rows plus a default admin when the users table is empty.
func Migrate(db *gorm.DB) error {
	// 1. Tables without foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Category{},
		&StoreSettings{},
		&CurrencySettings{},
	); err != nil {
		return err
	}

	// 2. Items depend on categories, transactions depend on items and users
	if err := db.AutoMigrate(
		&InventoryItem{},
		&StockTransaction{},
	); err != nil {
		return err
	}

	seedSettings(db)
	seedAdmin(db)
	return nil
}

func seedSettings(db *gorm.DB) {
	var store StoreSettings
	if err := db.First(&store, SettingsRowID).Error; err != nil {
		db.Create(&StoreSettings{ID: SettingsRowID, StoreName: "My Store"})
	}
	var currency CurrencySettings
	if err := db.First(&currency, SettingsRowID).Error; err != nil {
		db.Create(&CurrencySettings{ID: SettingsRowID, CurrencyCode: "USD"})
	}
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&User{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No users found and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	admin := User{
		Name:       "Admin",
		Email:      email,
		Password:   hash,
		Permission: PermissionAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
	} else {
		log.Println("Seeded default admin user:", email)
	}
}
