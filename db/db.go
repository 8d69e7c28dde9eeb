// Package db provides database connectivity for the bloglist service.
// It opens the connection handle for whichever backend is configured and runs
// PostgreSQL migrations. The handles it returns are owned by the caller, who
// hands them to a store implementation and closes them on shutdown.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "postgres" scheme for migrate.New.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/config"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// NewPool establishes a PostgreSQL connection pool and verifies it with a ping.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing postgres DSN", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating pgxpool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError("error connecting to postgres", err)
	}

	log.Info().Str("database", poolConfig.ConnConfig.Database).Int32("max_conns", poolConfig.MaxConns).Msg("connected to postgres")
	return pool, nil
}

// RunMigrations applies any pending migrations from migrationsPath.
// The directory holds golang-migrate files named
// {version}_{description}.up.sql / .down.sql.
func RunMigrations(cfg *config.PoolConfig, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, cfg.DSN())
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("error closing migrator")
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return apperror.NewMigrationError("failed to read migration version", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}

// ConnectMongo opens a client to the document store and verifies it with a ping.
func ConnectMongo(cfg *config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperror.NewDatabaseError("error connecting to mongodb", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperror.NewDatabaseError("error pinging mongodb", err)
	}

	log.Info().Str("database", cfg.Database).Msg("connected to mongodb")
	return client, nil
}

// OpenSQLite opens an embedded database file (or a `file:...?mode=memory` DSN)
// with foreign keys enforced.
func OpenSQLite(path string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error opening sqlite database %s", path), err)
	}
	// Pragmas are per connection and sqlite serializes writers anyway.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = conn.Close()
		return nil, apperror.NewDatabaseError("error enabling sqlite foreign keys", err)
	}
	return conn, nil
}
