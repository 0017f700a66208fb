package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rogerio-castellano/product-inventory-cli/internal/repo"
)

// Connector opens short-lived database handles, one per operation.
type Connector struct {
	dsn            string
	connectTimeout time.Duration
}

// NewConnector returns a Connector for dsn. A non-positive timeout means five seconds.
func NewConnector(dsn string, connectTimeout time.Duration) *Connector {
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	return &Connector{dsn: dsn, connectTimeout: connectTimeout}
}

// Connect returns a handle limited to a single connection that has already
// answered a ping. The caller owns it and must Close it.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	if c.dsn == "" {
		return nil, fmt.Errorf("database URL not configured")
	}

	db, err := sql.Open("pgx", c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// ProductOpener binds the connector to the product repository so each call
// yields a repository on a fresh connection.
func (c *Connector) ProductOpener(opts repo.PostgresOptions) repo.Opener {
	return func(ctx context.Context) (repo.ProductRepository, func() error, error) {
		database, err := c.Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewPostgresProductRepository(database, opts), database.Close, nil
	}
}
