package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-desk/internal/config"
)

// SQLite wraps access to the application's sqlite database file.
type SQLite struct {
	DB *sqlx.DB
}

// NewSQLite opens the database file, enabling foreign keys and UTC time
// parsing. The driver serializes writes internally; the access pattern is
// one logical write per request, so no further locking is layered on top.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_fk=1&_loc=UTC", cfg.Path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close releases the underlying handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Handle returns the underlying sqlx handle.
func (s *SQLite) Handle() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.DB
}
