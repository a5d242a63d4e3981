package repository_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/infras/otel/mocks"
	"naturekids/infras/postgres"
	"naturekids/shared"
	gDto "naturekids/shared/dto"
	"naturekids/shared/model"
	"naturekids/shared/repository"
	"naturekids/shared/timezone"
)

const schema = `CREATE TABLE notes (
	id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TIMESTAMP,
	modified_at TIMESTAMP,
	created_by TEXT,
	modified_by TEXT
)`

type note struct {
	ID    string `db:"id"`
	Owner string `db:"owner"`
	Body  string `db:"body"`
	model.Metadata
}

func newRepository(t *testing.T) repository.Repository[note] {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)

	conn := &postgres.Connection{Read: db, Write: db}

	return repository.NewRepository[note]("note", "notes", "id", conn, mocks.NewOtel())
}

func TestRepository_CRUD(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	now := timezone.Now()

	for _, n := range []note{
		{ID: "a", Owner: "1", Body: "first", Metadata: model.NewMetadata("1", now)},
		{ID: "b", Owner: "2", Body: "second", Metadata: model.NewMetadata("2", now)},
		{ID: "c", Owner: "1", Body: "third", Metadata: model.NewMetadata("1", now)},
	} {
		require.NoError(t, repo.Insert(ctx, n))
	}

	ownerFilter := shared.FilterByID("1", "owner", "notes")

	got, err := repo.Get(ctx, shared.FilterByID("b", "id", "notes"))
	require.NoError(t, err)
	assert.Equal(t, "second", got.Body)

	missing, err := repo.Get(ctx, shared.FilterByID("zzz", "id", "notes"))
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	exist, err := repo.Exist(ctx, ownerFilter)
	require.NoError(t, err)
	assert.True(t, exist)

	count, err := repo.Count(ctx, ownerFilter)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := repo.GetAll(ctx, gDto.OrderBy("id"), ownerFilter)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[1].ID)

	require.NoError(t, repo.Update(ctx, map[string]any{"body": "edited"}, shared.FilterByID("a", "id", "notes")))

	got, err = repo.Get(ctx, shared.FilterByID("a", "id", "notes"))
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Body)

	require.NoError(t, repo.Delete(ctx, shared.FilterByID("a", "id", "notes")))

	count, err = repo.Count(ctx, ownerFilter)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo := newRepository(t)

	_, err := repo.Exist(context.Background(), gDto.FilterGroup{})
	require.Error(t, err)

	err = repo.Delete(context.Background(), gDto.FilterGroup{})
	require.Error(t, err)
}

func TestRepository_UpdateBindsValuesApartFromFilter(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, note{ID: "a", Owner: "1", Body: "first", Metadata: model.NewMetadata("1", timezone.Now())}))

	// filtering and setting the same column must not clash
	require.NoError(t, repo.Update(ctx, map[string]any{"owner": "2"}, shared.FilterByID("1", "owner", "notes")))

	got, err := repo.Get(ctx, shared.FilterByID("a", "id", "notes"))
	require.NoError(t, err)
	assert.Equal(t, "2", got.Owner)

	require.Error(t, repo.Update(ctx, map[string]any{"body": "x"}, gDto.FilterGroup{}))
}
