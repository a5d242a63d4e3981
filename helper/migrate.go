package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"naturekids/config"
	"naturekids/infras/postgres"
	"slices"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action")

type action struct {
	run  func(*migrate.Migrate) error
	done string
}

var actions = map[string]action{
	"up":      {run: (*migrate.Migrate).Up, done: "Database migrations applied"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Applied one migration"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Rolled back one migration"},
	"drop":    {run: (*migrate.Migrate).Down, done: "Rolled back every migration"},
}

// Actions lists the accepted migration actions in a stable order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Run applies one migration action against the write database. ErrNoChange is
// not an error.
func Run(cfg *config.Config, name string) error {
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("%w %q, use one of %s", ErrUnknownAction, name, strings.Join(Actions(), ", "))
	}

	dsn := fmt.Sprintf("%s&x-migrations-table=%s", postgres.WriteDSN(*cfg), cfg.DB.Postgres.MigrationTable)

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = act.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", name, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", name).Uint("version", version).Bool("dirty", dirty).Msg(act.done)

	return nil
}

// Up is run by the app at start-up when auto-migration is enabled.
func Up(cfg *config.Config) error {
	return Run(cfg, "up")
}
