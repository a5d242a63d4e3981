package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/identity/model"
	gDto "naturekids/shared/dto"
	gRepo "naturekids/shared/repository"
	"time"
)

// User is the account table behind database identity mode. Lookups return the
// zero User when nothing matches.
type User interface {
	Insert(ctx context.Context, user model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	// Taken reports whether either the username or the email is registered.
	Taken(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, profile model.Profile, at time.Time) error
}

type repositoryImpl struct {
	users gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		users: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func byField(field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	return r.users.Insert(ctx, user) //nolint:wrapcheck
}

func (r *repositoryImpl) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.users.Get(ctx, gDto.FilterGroup{Filters: []gDto.Clause{byField(model.FieldUsername, username)}}) //nolint:wrapcheck
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.User, error) {
	return r.users.Get(ctx, gDto.FilterGroup{Filters: []gDto.Clause{byField(model.FieldID, id)}}) //nolint:wrapcheck
}

func (r *repositoryImpl) Taken(ctx context.Context, username, email string) (bool, error) {
	return r.users.Exist(ctx, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []gDto.Clause{
			byField(model.FieldUsername, username),
			byField(model.FieldEmail, email),
		},
		Operator: gDto.FilterGroupOperatorOr,
	})
}

func (r *repositoryImpl) UpdateProfile(ctx context.Context, id string, profile model.Profile, at time.Time) error {
	values := map[string]any{
		model.FieldUsername:    profile.Username,
		model.FieldPhoneNumber: profile.PhoneNumber,
		model.FieldLocation:    profile.Location,
		model.FieldDateOfBirth: profile.DateOfBirth,
		model.FieldBio:         profile.Bio,
		model.FieldModifiedAt:  at,
		model.FieldModifiedBy:  id,
	}

	return r.users.Update(ctx, values, gDto.FilterGroup{Filters: []gDto.Clause{byField(model.FieldID, id)}}) //nolint:wrapcheck
}
