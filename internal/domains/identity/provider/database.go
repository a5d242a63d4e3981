package provider

import (
	"context"
	"errors"
	"fmt"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/repository"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	gModel "naturekids/shared/model"
	"naturekids/shared/password"
	"naturekids/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	errUserExists     = "username or email already registered"
	errUsernameExists = "username already taken"
)

type databaseImpl struct {
	users repository.User
}

// NewDatabase stores users with bcrypt password hashes.
func NewDatabase(users repository.User) Provider {
	return &databaseImpl{users: users}
}

func (d *databaseImpl) Authenticate(ctx context.Context, username, plain string) (model.Identity, error) {
	user, err := d.users.FindByUsername(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to get user")

		return model.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return model.Identity{}, failure.InvalidCredentials
	}

	if err := password.Verify(plain, user.Password); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return model.Identity{}, failure.InvalidCredentials
		}

		return model.Identity{}, fmt.Errorf("failed to verify password: %w", err)
	}

	return user.Identity(), nil
}

func (d *databaseImpl) Register(ctx context.Context, reg model.Registration) (model.Identity, error) {
	exist, err := d.users.Taken(ctx, reg.Username, reg.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check user existence")

		return model.Identity{}, fmt.Errorf("failed to check user existence: %w", err)
	}

	if exist {
		return model.Identity{}, failure.Conflict(errUserExists) // nolint:wrapcheck
	}

	hash, err := password.Hash(reg.Password)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := model.User{
		ID:          id.String(),
		Username:    reg.Username,
		Email:       reg.Email,
		Password:    hash,
		PhoneNumber: reg.PhoneNumber,
		Location:    reg.Location,
		DateOfBirth: reg.DateOfBirth,
		Bio:         reg.Bio,
		Metadata:    gModel.NewMetadata(constant.SystemUser, timezone.Now()),
	}

	if err := d.users.Insert(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return model.Identity{}, failure.Conflict(errUserExists) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert user")

		return model.Identity{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user.Identity(), nil
}

func (d *databaseImpl) Find(ctx context.Context, id string) (model.Identity, error) {
	user, err := d.users.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("userID", id).Msg("failed to get user")

		return model.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return model.Identity{}, nil
	}

	return user.Identity(), nil
}

func (d *databaseImpl) UpdateProfile(ctx context.Context, id string, profile model.Profile) (model.Identity, error) {
	user, err := d.users.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("userID", id).Msg("failed to get user")

		return model.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return model.Identity{}, nil
	}

	if profile.Username != user.Username {
		holder, err := d.users.FindByUsername(ctx, profile.Username)
		if err != nil {
			return model.Identity{}, fmt.Errorf("failed to check username: %w", err)
		}

		if holder.ID != "" {
			return model.Identity{}, failure.Conflict(errUsernameExists) // nolint:wrapcheck
		}
	}

	if err := d.users.UpdateProfile(ctx, id, profile, timezone.Now()); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return model.Identity{}, failure.Conflict(errUsernameExists) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("userID", id).Msg("failed to update profile")

		return model.Identity{}, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Username = profile.Username
	user.PhoneNumber = profile.PhoneNumber
	user.Location = profile.Location
	user.DateOfBirth = profile.DateOfBirth
	user.Bio = profile.Bio

	return user.Identity(), nil
}
