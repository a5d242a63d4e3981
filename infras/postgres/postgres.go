package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"naturekids/config"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection splits reads and writes so a replica can serve the catalog.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func (e endpoint) dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.dbName,
		e.sslMode,
	)
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := connectWithRetry(endpointFor("write", pg.Write, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime)

	// Without a dedicated replica both sides share the writer pool.
	if pg.Read.Host == "" {
		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connectWithRetry(endpointFor("read", pg.Read, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
		Write: write,
	}
}

// Required reports whether any configured store lives in postgres.
func Required(cfg *config.Config) bool {
	return cfg.Store.Driver == config.StoreDriverPostgres ||
		cfg.Store.CatalogSource == config.CatalogSourcePostgres ||
		cfg.Identity.Mode == config.IdentityModeDatabase
}

// Provide connects only when Required; otherwise the connection is nil and
// every store runs in memory.
func Provide(cfg *config.Config) *Connection {
	if !Required(cfg) {
		log.Info().Msg("No store configured for postgres, skipping database connection")

		return nil
	}

	return New(cfg)
}

// Close releases both pools.
func (c *Connection) Close() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

func endpointFor(name string, node config.PostgresNode, prefix string) endpoint {
	return endpoint{
		name:     name,
		username: node.Username,
		password: node.Password,
		host:     node.Host,
		port:     node.Port,
		dbName:   prefix + node.Name,
		sslMode:  node.SSLMode,
	}
}

// WriteDSN is used by the migration runner.
func WriteDSN(cfg config.Config) string {
	return endpointFor("write", cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix).dsn()
}

func connectWithRetry(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			log.
				Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("port", e.port).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", e.name).Int("attempts", maxRetry).Msg("Could not connect to database")

	return nil
}
