package client

import (
	"fmt"
	"strings"
	"time"

	"iptv-storefront/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the storefront database. DSNs with a user@host part are
// treated as MySQL; everything else (file paths, ":memory:") as SQLite.
func InitDB(databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.Contains(databaseURL, "@tcp(") || strings.HasPrefix(databaseURL, "mysql://") {
		dsn := strings.TrimPrefix(databaseURL, "mysql://")
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.Subscription{},
		&model.ClientData{},
		&model.WebhookEvent{},
		&model.AdminSettings{},
	)
}
