package database

import (
	"polypoint-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens the record store. A Postgres DSN wins when configured;
// otherwise a local sqlite file keeps the app usable with no infrastructure,
// mirroring the hosted-vs-local split of the original deployment.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
func Open(dsn, sqlitePath string) (*gorm.DB, error) {
	if dsn != "" {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
}

// AutoMigrate runs migrations for all record types.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Developer{},
		&domain.AvailabilityRow{},
		&domain.IntervalState{},
		&domain.Improvement{},
	)
}
