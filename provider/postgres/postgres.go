// Package postgres stores keyedcache entries in a two-column PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "odoo_buddy_settings"

var tableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

type Config struct {
	Pool      *pgxpool.Pool
	Table     string
	ClosePool bool // set true only if this provider exclusively owns the pool
}

// Provider keeps one row per key: (key text primary key, value bytea).
type Provider struct {
	pool      *pgxpool.Pool
	table     string
	closePool bool
}

var _ pr.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	if cfg.Pool == nil {
		return nil, errors.New("postgres provider: nil pool")
	}
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	// the name is interpolated into SQL
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("postgres provider: invalid table name %q", table)
	}
	return &Provider{pool: cfg.Pool, table: table, closePool: cfg.ClosePool}, nil
}

// Dial opens a pool for dsn and makes sure the table exists.
// The returned provider owns the pool.
func Dial(ctx context.Context, dsn, table string) (*Provider, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres provider: connect: %w", err)
	}
	p, err := New(Config{Pool: pool, Table: table, ClosePool: true})
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate creates the table when missing.
func (p *Provider) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)`, p.table))
	if err != nil {
		return fmt.Errorf("postgres provider: migrate %s: %w", p.table, err)
	}
	return nil
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var b []byte
	err := p.pool.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table), key).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, true, nil
}

func (p *Provider) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, p.table), key, value)
	return err
}

func (p *Provider) Del(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table), key)
	return err
}

func (p *Provider) Close(_ context.Context) error {
	if p.closePool {
		p.pool.Close()
	}
	return nil
}
