package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/infras/otel/mocks"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/repository"
	gModel "naturekids/shared/model"
)

const schema = `CREATE TABLE users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	phone_number TEXT,
	location TEXT,
	date_of_birth TEXT,
	bio TEXT,
	created_at TIMESTAMP,
	modified_at TIMESTAMP,
	created_by TEXT,
	modified_by TEXT
)`

func newUsers(t *testing.T) repository.User {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())
}

func TestUser_InsertAndFind(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	asha := model.User{
		ID:       "0192a",
		Username: "asha",
		Email:    "asha@example.com",
		Password: "hash",
		Bio:      "likes birds",
		Metadata: gModel.NewMetadata("system", time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, users.Insert(ctx, asha))

	byName, err := users.FindByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "0192a", byName.ID)
	assert.Equal(t, "likes birds", byName.Bio)

	byID, err := users.FindByID(ctx, "0192a")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", byID.Email)

	missing, err := users.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestUser_Taken(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, model.User{ID: "u1", Username: "asha", Email: "asha@example.com", Password: "hash"}))

	tests := []struct {
		name     string
		username string
		email    string
		want     bool
	}{
		{name: "same username", username: "asha", email: "other@example.com", want: true},
		{name: "same email", username: "other", email: "asha@example.com", want: true},
		{name: "fresh", username: "other", email: "other@example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := users.Taken(ctx, tt.username, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taken)
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, model.User{ID: "u1", Username: "asha", Email: "asha@example.com", Password: "hash"}))
	require.NoError(t, users.Insert(ctx, model.User{ID: "u2", Username: "ravi", Email: "ravi@example.com", Password: "hash"}))

	profile := model.Profile{Username: "asha.rao", PhoneNumber: "555-0101", Location: "Pune", DateOfBirth: "1990-04-12", Bio: "birder"}
	require.NoError(t, users.UpdateProfile(ctx, "u1", profile, time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)))

	got, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "asha.rao", got.Username)
	assert.Equal(t, "Pune", got.Location)
	assert.Equal(t, "birder", got.Bio)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "hash", got.Password)
	assert.Equal(t, "u1", got.ModifiedBy)

	other, err := users.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "ravi", other.Username)

	err = users.UpdateProfile(ctx, "u2", model.Profile{Username: "asha.rao"}, time.Now())
	assert.Error(t, err)
}
