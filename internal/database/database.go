// Package database provides connection management for the Frappe site database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL/MariaDB driver

	"github.com/scango/visitorgate/internal/config"
)

// Manager owns the connection pool to the site database.
type Manager struct {
	Site   *sql.DB
	config *config.Config
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// Connect establishes the site connection.
func (m *Manager) Connect(ctx context.Context) error {
	var err error

	m.Site, err = m.connectWithRetry(ctx, &m.config.Site)
	if err != nil {
		return fmt.Errorf("failed to connect to site database: %w", err)
	}
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = m.connect(cfg)
		if err == nil {
			pingErr := db.PingContext(ctx)
			if pingErr == nil {
				return db, nil
			}
			db.Close()
			err = pingErr
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// connect creates a database connection.
func (m *Manager) connect(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", BuildDSN(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
// Frappe stores Thai text, so the connection always uses utf8mb4.
func BuildDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true&charset=utf8mb4&loc=Local"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes the site connection.
func (m *Manager) Close() error {
	if m.Site == nil {
		return nil
	}
	if err := m.Site.Close(); err != nil {
		return fmt.Errorf("site close: %w", err)
	}
	return nil
}

// Ping verifies the site connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Site == nil {
		return fmt.Errorf("site database not connected")
	}
	if err := m.Site.PingContext(ctx); err != nil {
		return fmt.Errorf("site ping failed: %w", err)
	}
	return nil
}
