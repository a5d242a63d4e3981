package provider

import (
	"context"
	"crypto/subtle"
	"naturekids/config"
	"naturekids/internal/domains/identity/model"
	"naturekids/shared/failure"
)

const errDemoReadOnly = "the demo account cannot be edited"

type demoImpl struct {
	username string
	password string
}

// NewDemo accepts exactly one configured credential pair.
func NewDemo(cfg *config.Config) Provider {
	return &demoImpl{
		username: cfg.Identity.Demo.Username,
		password: cfg.Identity.Demo.Password,
	}
}

func (d *demoImpl) Authenticate(_ context.Context, username, password string) (model.Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(d.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(d.password)) == 1

	if !userOK || !passOK {
		return model.Identity{}, failure.InvalidCredentials
	}

	return model.DemoIdentity(d.username), nil
}

// Register ignores the submitted profile.
func (d *demoImpl) Register(_ context.Context, _ model.Registration) (model.Identity, error) {
	return model.DemoIdentity(d.username), nil
}

func (d *demoImpl) Find(_ context.Context, id string) (model.Identity, error) {
	if id != model.DemoIdentityID {
		return model.Identity{}, nil
	}

	return model.DemoIdentity(d.username), nil
}

func (d *demoImpl) UpdateProfile(_ context.Context, _ string, _ model.Profile) (model.Identity, error) {
	return model.Identity{}, failure.Forbidden(errDemoReadOnly) // nolint:wrapcheck
}
