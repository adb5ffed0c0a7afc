package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitPostgresORM opens a GORM handle for deployments that run the GORM
// storage adapter instead of the sqlx one. TranslateError maps duplicate
// keys onto gorm.ErrDuplicatedKey so the adapter can report conflicts.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return conn, nil
}
