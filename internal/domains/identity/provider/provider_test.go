package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/config"
	"naturekids/internal/domains/identity/mocks"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/provider"
	"naturekids/shared/failure"
	"naturekids/shared/password"
)

func demoConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Identity.Mode = config.IdentityModeDemo
	cfg.Identity.Demo.Username = "testuser"
	cfg.Identity.Demo.Password = "password"

	return cfg
}

func TestDemo_Authenticate(t *testing.T) {
	demo := provider.NewDemo(demoConfig())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid pair", username: "testuser", password: "password"},
		{name: "wrong password", username: "testuser", password: "wrong", wantErr: failure.InvalidCredentials},
		{name: "wrong username", username: "other", password: "password", wantErr: failure.InvalidCredentials},
		{name: "empty", wantErr: failure.InvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := demo.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, identity.Empty())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.DemoIdentity("testuser"), identity)
			assert.Equal(t, "test@example.com", identity.Email)
		})
	}
}

func TestDemo_RegisterAndFind(t *testing.T) {
	demo := provider.NewDemo(demoConfig())
	ctx := context.Background()

	identity, err := demo.Register(ctx, model.Registration{Username: "someone", Email: "someone@example.com"})
	require.NoError(t, err)
	assert.Equal(t, model.DemoIdentityID, identity.ID)
	assert.Equal(t, "testuser", identity.Username)

	found, err := demo.Find(ctx, model.DemoIdentityID)
	require.NoError(t, err)
	assert.Equal(t, identity, found)

	missing, err := demo.Find(ctx, "42")
	require.NoError(t, err)
	assert.True(t, missing.Empty())
}

func TestProvide(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := demoConfig()
	_, err := provider.Provide(cfg, nil).Authenticate(context.Background(), "testuser", "password")
	require.NoError(t, err)

	users := mocks.NewMockUser(ctrl)
	users.EXPECT().FindByUsername(gomock.Any(), "testuser").Return(model.User{}, nil)

	cfg.Identity.Mode = config.IdentityModeDatabase
	_, err = provider.Provide(cfg, users).Authenticate(context.Background(), "testuser", "password")
	assert.ErrorIs(t, err, failure.InvalidCredentials)
}

func TestDatabase_Authenticate(t *testing.T) {
	hash, err := password.Hash("secret1")
	require.NoError(t, err)

	stored := model.User{ID: "0192", Username: "asha", Email: "asha@example.com", Password: hash}

	tests := []struct {
		name      string
		password  string
		setupMock func(users *mocks.MockUser)
		wantErr   error
		wantAny   bool
	}{
		{
			name:     "valid",
			password: "secret1",
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByUsername(gomock.Any(), "asha").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByUsername(gomock.Any(), "asha").Return(stored, nil)
			},
			wantErr: failure.InvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "secret1",
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByUsername(gomock.Any(), "asha").Return(model.User{}, nil)
			},
			wantErr: failure.InvalidCredentials,
		},
		{
			name:     "store failure",
			password: "secret1",
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByUsername(gomock.Any(), "asha").Return(model.User{}, errors.New("db down"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mocks.NewMockUser(ctrl)
			tt.setupMock(users)

			identity, err := provider.NewDatabase(users).Authenticate(context.Background(), "asha", tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, stored.Identity(), identity)
			}
		})
	}
}

func TestDatabase_Register(t *testing.T) {
	reg := model.Registration{Username: "asha", Email: "asha@example.com", Password: "secret1", Bio: "likes birds"}

	t.Run("persists a fresh identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUser(ctrl)

		var inserted model.User

		users.EXPECT().Taken(gomock.Any(), "asha", "asha@example.com").Return(false, nil)
		users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u model.User) error {
			inserted = u

			return nil
		})

		identity, err := provider.NewDatabase(users).Register(context.Background(), reg)
		require.NoError(t, err)
		assert.NotEmpty(t, identity.ID)
		assert.Equal(t, "asha", identity.Username)
		assert.Equal(t, "likes birds", identity.Bio)
		assert.NotEqual(t, "secret1", inserted.Password)
		require.NoError(t, password.Verify("secret1", inserted.Password))
	})

	t.Run("duplicate via lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUser(ctrl)
		users.EXPECT().Taken(gomock.Any(), "asha", "asha@example.com").Return(true, nil)

		_, err := provider.NewDatabase(users).Register(context.Background(), reg)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("duplicate via unique index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUser(ctrl)
		users.EXPECT().Taken(gomock.Any(), "asha", "asha@example.com").Return(false, nil)
		users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		_, err := provider.NewDatabase(users).Register(context.Background(), reg)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestDatabase_Find(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUser(ctrl)

	gomock.InOrder(
		users.EXPECT().FindByID(gomock.Any(), "u1").Return(model.User{ID: "u1", Username: "asha"}, nil),
		users.EXPECT().FindByID(gomock.Any(), "u2").Return(model.User{}, nil),
	)

	db := provider.NewDatabase(users)

	found, err := db.Find(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "asha", found.Username)

	missing, err := db.Find(context.Background(), "u2")
	require.NoError(t, err)
	assert.True(t, missing.Empty())
}

func TestDemo_UpdateProfileIsForbidden(t *testing.T) {
	_, err := provider.NewDemo(demoConfig()).UpdateProfile(context.Background(), model.DemoIdentityID, model.Profile{Username: "x"})
	assert.Equal(t, 403, failure.GetCode(err))
}

func TestDatabase_UpdateProfile(t *testing.T) {
	stored := model.User{ID: "u1", Username: "asha", Email: "asha@example.com", Password: "hash"}
	profile := model.Profile{Username: "asha.rao", Location: "Pune", Bio: "birder"}

	tests := []struct {
		name      string
		profile   model.Profile
		setupMock func(users *mocks.MockUser)
		wantCode  int
		wantEmpty bool
	}{
		{
			name:    "renamed",
			profile: profile,
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(stored, nil)
				users.EXPECT().FindByUsername(gomock.Any(), "asha.rao").Return(model.User{}, nil)
				users.EXPECT().UpdateProfile(gomock.Any(), "u1", profile, gomock.Any()).Return(nil)
			},
		},
		{
			name:    "same username skips the lookup",
			profile: model.Profile{Username: "asha", Bio: "birder"},
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(stored, nil)
				users.EXPECT().UpdateProfile(gomock.Any(), "u1", gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "unknown user",
			profile: profile,
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(model.User{}, nil)
			},
			wantEmpty: true,
		},
		{
			name:    "username held by someone else",
			profile: profile,
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(stored, nil)
				users.EXPECT().FindByUsername(gomock.Any(), "asha.rao").Return(model.User{ID: "u2"}, nil)
			},
			wantCode: 409,
		},
		{
			name:    "username claimed concurrently",
			profile: profile,
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(stored, nil)
				users.EXPECT().FindByUsername(gomock.Any(), "asha.rao").Return(model.User{}, nil)
				users.EXPECT().UpdateProfile(gomock.Any(), "u1", profile, gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
		{
			name:    "store failure",
			profile: profile,
			setupMock: func(users *mocks.MockUser) {
				users.EXPECT().FindByID(gomock.Any(), "u1").Return(model.User{}, errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mocks.NewMockUser(ctrl)
			tt.setupMock(users)

			identity, err := provider.NewDatabase(users).UpdateProfile(context.Background(), "u1", tt.profile)

			switch {
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantEmpty:
				require.NoError(t, err)
				assert.True(t, identity.Empty())
			default:
				require.NoError(t, err)
				assert.Equal(t, "u1", identity.ID)
				assert.Equal(t, tt.profile.Username, identity.Username)
				assert.Equal(t, tt.profile.Bio, identity.Bio)
				assert.Equal(t, "asha@example.com", identity.Email)
			}
		})
	}
}
