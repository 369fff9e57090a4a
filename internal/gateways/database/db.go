package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oldgods/nmibot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/glebarez/go-sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	sqliteConnOpts       = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type Config struct {
	Driver   string `toml:"driver"`
	Path     string `toml:"path"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size" split_words:"true"`
}

// DB owns the tracking store connection. The connection is opened and the
// schema ensured on first use; later calls share the same handle.
type DB struct {
	cfg Config

	mu    sync.RWMutex
	bunDB *bun.DB
	pool  *pgxpool.Pool
}

func New(cfg Config) *DB {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Driver == DriverSQLite && cfg.Path == "" {
		cfg.Path = "sqlite.db"
	}
	return &DB{cfg: cfg}
}

// Conn returns the shared connection, opening it if needed.
func (db *DB) Conn(ctx context.Context) (*bun.DB, error) {
	db.mu.RLock()
	if db.bunDB != nil {
		defer db.mu.RUnlock()
		return db.bunDB, nil
	}
	db.mu.RUnlock()

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.bunDB != nil {
		return db.bunDB, nil
	}

	start := time.Now()
	bunDB, pool, err := db.open(ctx)
	if err != nil {
		return nil, err
	}
	if err := InitializeSchema(ctx, bunDB); err != nil {
		_ = bunDB.Close()
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	db.bunDB, db.pool = bunDB, pool
	slog.Info("Tracking store connected",
		slog.String("type", "db"),
		slog.String("driver", db.cfg.Driver),
		slog.Duration("took", time.Since(start)),
	)
	return bunDB, nil
}

func (db *DB) open(ctx context.Context) (*bun.DB, *pgxpool.Pool, error) {
	switch db.cfg.Driver {
	case DriverSQLite:
		bunDB, err := openSQLite(db.cfg.Path)
		return bunDB, nil, err
	case DriverPostgres:
		return openPostgres(ctx, db.cfg)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, db.cfg.Driver)
	}
}

func openSQLite(path string) (*bun.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?%s", path, sqliteConnOpts)
	}
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// One connection: writes are serialized and an in-memory database stays alive.
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func openPostgres(ctx context.Context, cfg Config) (*bun.DB, *pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	for i := 0; i < defaultMaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(buildConnString(cfg))))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	return bun.NewDB(sqldb, pgdialect.New()), pool, nil
}

func buildConnString(cfg Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

// InitializeSchema creates the tracking table and its lookup indexes.
// An existing table is accepted as is.
func InitializeSchema(ctx context.Context, bunDB *bun.DB) error {
	_, err := bunDB.NewCreateTable().
		Model((*models.MemberJoinMessage)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_member_join_messages_user ON member_join_messages(discord_user_id);",
		"CREATE INDEX IF NOT EXISTS idx_member_join_messages_message ON member_join_messages(message_id);",
	}
	for _, idx := range indexes {
		if _, err := bunDB.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Ping checks the store is reachable, opening the connection if needed.
func (db *DB) Ping(ctx context.Context) error {
	bunDB, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	db.mu.RLock()
	pool := db.pool
	db.mu.RUnlock()
	if pool != nil {
		return pool.Ping(ctx)
	}
	return bunDB.PingContext(ctx)
}

func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.pool != nil {
		db.pool.Close()
		db.pool = nil
	}
	if db.bunDB == nil {
		return nil
	}
	err := db.bunDB.Close()
	db.bunDB = nil
	return err
}
