package storage

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/looplj/chirphub/internal/pkg/sqlite"

	"github.com/looplj/chirphub/internal/log"
)

// Client wraps a dialect-aware SQL driver. All stores share one client; the
// client is safe for concurrent use.
type Client struct {
	drv     *entsql.Driver
	dialect string
	debug   bool
}

func Open(cfg Config) (*Client, error) {
	var (
		db        *sql.DB
		dbDialect string
		err       error
	)

	switch cfg.Dialect {
	case "postgres", "pgx", "pg", "postgresql":
		db, err = sql.Open("pgx", cfg.DSN)
		dbDialect = dialect.Postgres
	case "sqlite", "sqlite3":
		db, err = sql.Open("sqlite3", cfg.DSN)
		dbDialect = dialect.SQLite
	case "mysql", "tidb":
		db, err = sql.Open("mysql", cfg.DSN)
		dbDialect = dialect.MySQL
	default:
		return nil, fmt.Errorf("storage: invalid dialect: %q", cfg.Dialect)
	}

	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", cfg.Dialect, err)
	}

	return &Client{
		drv:     entsql.OpenDB(dbDialect, db),
		dialect: dbDialect,
		debug:   cfg.Debug,
	}, nil
}

func (c *Client) Dialect() string {
	return c.dialect
}

func (c *Client) DB() *sql.DB {
	return c.drv.DB()
}

func (c *Client) Close() error {
	return c.drv.Close()
}

// builder returns a dialect-bound statement builder.
func (c *Client) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

// txKey is an unexported key type carrying the active transaction.
type txKey struct{}

// NewTxContext returns a context carrying tx.
func NewTxContext(ctx context.Context, tx dialect.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the active transaction, or nil.
func TxFromContext(ctx context.Context) dialect.Tx {
	tx, _ := ctx.Value(txKey{}).(dialect.Tx)
	return tx
}

// conn returns the active transaction if one is bound to the context,
// otherwise the root driver.
func (c *Client) conn(ctx context.Context) dialect.ExecQuerier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}

	return c.drv
}

// RunInTransaction executes fn inside a transaction. A transaction already
// bound to the context is joined rather than nested.
func (c *Client) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return err
	}

	committed := false

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()

			panic(r)
		}

		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(NewTxContext(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true

	return nil
}

func (c *Client) exec(ctx context.Context, query string, args []any) (sql.Result, error) {
	if c.debug {
		log.Debug(ctx, "storage: exec", log.String("query", query))
	}

	var res sql.Result
	if err := c.conn(ctx).Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) query(ctx context.Context, query string, args []any) (*entsql.Rows, error) {
	if c.debug {
		log.Debug(ctx, "storage: query", log.String("query", query))
	}

	rows := &entsql.Rows{}
	if err := c.conn(ctx).Query(ctx, query, args, rows); err != nil {
		return nil, err
	}

	return rows, nil
}
