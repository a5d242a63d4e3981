package repository_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/otel/mocks"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/catalog/model"
	"naturekids/internal/domains/catalog/repository"
)

const schema = `CREATE TABLE activities (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	location TEXT NOT NULL,
	listing_date TEXT,
	price INTEGER NOT NULL,
	rating REAL,
	review_count INTEGER,
	image TEXT,
	description TEXT,
	duration TEXT,
	age_range TEXT,
	max_participants INTEGER,
	available_times TEXT,
	requirements TEXT,
	created_at TIMESTAMP,
	modified_at TIMESTAMP,
	created_by TEXT,
	modified_by TEXT
)`

const seed = `INSERT INTO activities
	(id, title, location, listing_date, price, rating, review_count, image, description, duration, age_range, max_participants, available_times, requirements, created_at, modified_at, created_by, modified_by)
VALUES
	(1, 'Nature Scavenger Hunt', 'Central Park', '2024-04-15', 350, 4.8, 42, '', 'Hunt', '2 hours', '4-8 years', 15, '{"09:00 AM","11:00 AM","02:00 PM"}', '{"Sun hat"}', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 'system', 'system'),
	(4, 'Beach Discovery', 'Sunny Beach', '2024-04-28', 600, 4.9, 45, '', 'Beach', '2.5 hours', '3-6 years', 15, '{"10:00 AM","02:00 PM"}', '{Towel}', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 'system', 'system')`

func newPostgresRepository(t *testing.T) repository.Activity {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	_, err = db.Exec(seed)
	require.NoError(t, err)

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())
}

func TestRepository_Get(t *testing.T) {
	repo := newPostgresRepository(t)

	activity, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Nature Scavenger Hunt", activity.Title)
	assert.Equal(t, []string{"09:00 AM", "11:00 AM", "02:00 PM"}, []string(activity.AvailableTimes))
	require.NoError(t, activity.Validate())

	missing, err := repo.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, missing.ID)
}

func TestRepository_List(t *testing.T) {
	repo := newPostgresRepository(t)

	all, err := repo.List(context.Background(), model.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)

	cheap, err := repo.List(context.Background(), model.Filter{MaxPrice: 400, Search: "HUNT"})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Central Park", cheap[0].Location)

	beach, err := repo.List(context.Background(), model.Filter{Locations: []string{"Sunny Beach"}, MinRating: 4.9})
	require.NoError(t, err)
	require.Len(t, beach, 1)
	assert.Equal(t, int64(4), beach[0].ID)
}

func TestStatic(t *testing.T) {
	repo := repository.NewStatic(mocks.NewOtel())
	ctx := context.Background()

	all, err := repo.List(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 10)

	for _, activity := range all {
		assert.NoError(t, activity.Validate())
	}

	hunt, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(350), hunt.Price)
	assert.Equal(t, 15, hunt.MaxParticipants)

	hunt.AvailableTimes[0] = "mutated"
	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "09:00 AM", again.AvailableTimes[0])

	storytellers, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Story Garden", storytellers.Location)

	missing, err := repo.Get(ctx, 11)
	require.NoError(t, err)
	assert.Zero(t, missing.ID)

	gardens, err := repo.List(ctx, model.Filter{Locations: []string{"Botanical Gardens", "Community Garden"}})
	require.NoError(t, err)
	assert.Len(t, gardens, 2)
}

func TestProvide(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.CatalogSource = config.CatalogSourceStatic

	repo := repository.Provide(cfg, nil, mocks.NewOtel())

	activity, err := repo.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Garden Explorers", activity.Title)
}
