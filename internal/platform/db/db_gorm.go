// Package db opens the shared database connection.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"task_backend/internal/config"
	authentity "task_backend/internal/feature/auth/domain/entity"
	tasklistentity "task_backend/internal/feature/tasklists/domain/entity"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// Open connects to Postgres, retrying for up to a minute so the server
// survives a database that comes up slightly later than the app container.
func Open(cfg config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.App.RunMigrations {
		if err := db.AutoMigrate(
			&authentity.User{},
			&tasklistentity.TaskList{},
			&taskentity.Task{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
