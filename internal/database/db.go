package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/atendeai/dashboard-server-go/internal/config"
)

// ErrUnavailable is returned when no DATABASE_URL is configured or the
// store cannot be reached. Read paths translate it into empty results;
// write paths surface it as a data-access error.
var ErrUnavailable = errors.New("database unavailable")

// Querier is the subset of sqlx used by repositories.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var _ Querier = (*sqlx.DB)(nil)

// Client owns the shared connection pool. The pool is opened on first use
// so the server can start (in degraded read mode) without a reachable
// store; once opened it is reused for the process lifetime.
type Client struct {
	databaseURL string

	mu sync.Mutex
	db *sqlx.DB
}

func NewClient(databaseURL string) *Client {
	return &Client{databaseURL: databaseURL}
}

// Acquire returns the shared pool, connecting on first use.
func (c *Client) Acquire(ctx context.Context) (Querier, error) {
	db, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (c *Client) acquire(ctx context.Context) (*sqlx.DB, error) {
	if c.databaseURL == "" {
		return nil, ErrUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", c.databaseURL)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(config.DBConnMaxLifetime)

	c.db = db
	return c.db, nil
}

// Ping connects if needed and verifies the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	db, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
