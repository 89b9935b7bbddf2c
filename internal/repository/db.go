package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edumate/internal/models"
)

// NewDB opens gorm over an existing SQLite connection and runs migrations.
func NewDB(conn *sql.DB, log *slog.Logger) (*gorm.DB, error) {
	if conn == nil {
		return nil, fmt.Errorf("nil database connection")
	}
	if log == nil {
		log = slog.Default()
	}

	dbLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(&sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.Reminder{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// notFound converts gorm's sentinel into the domain one.
func notFound(kind string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", kind, models.ErrNotFound)
	}
	return err
}

// duplicate converts a unique index violation into models.ErrConflict.
func duplicate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
