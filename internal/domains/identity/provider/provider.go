package provider

//go:generate go run go.uber.org/mock/mockgen -source=./provider.go -destination=../mocks/provider_mock.go -package=mocks

import (
	"context"
	"naturekids/config"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/repository"
)

// Provider checks credentials and owns the user records behind an identity.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (model.Identity, error)
	Register(ctx context.Context, registration model.Registration) (model.Identity, error)
	Find(ctx context.Context, id string) (model.Identity, error)
	// UpdateProfile returns the empty Identity when the user does not exist.
	UpdateProfile(ctx context.Context, id string, profile model.Profile) (model.Identity, error)
}

func Provide(cfg *config.Config, users repository.User) Provider {
	if cfg.Identity.Mode == config.IdentityModeDatabase {
		return NewDatabase(users)
	}

	return NewDemo(cfg)
}
