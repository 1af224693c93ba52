// Package migrations embeds the SQL schema of the cargo service and applies it
// with goose.
package migrations

import (
	"context"
	"embed"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed *.sql
var Migrations embed.FS

var gooseSetup sync.Once

// Up applies every pending migration to the database behind db.
func Up(ctx context.Context, db *gorm.DB) error {
	var setupErr error
	gooseSetup.Do(func() {
		goose.SetBaseFS(Migrations)
		setupErr = goose.SetDialect("postgres")
	})
	if setupErr != nil {
		return setupErr
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, ".")
}
