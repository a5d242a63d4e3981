package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/review/model"
	gDto "naturekids/shared/dto"
	gRepo "naturekids/shared/repository"
)

// Ledger is append-only; reviews are never edited or removed.
type Ledger interface {
	Insert(ctx context.Context, review model.Review) error
	ListByActivity(ctx context.Context, activityID int64) ([]model.Review, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Ledger {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func Provide(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Ledger {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		return New(db, otel)
	}

	return NewMemory()
}

func (r *repositoryImpl) ListByActivity(ctx context.Context, activityID int64) ([]model.Review, error) {
	params := gDto.OrderBy(model.TableName + "." + model.FieldID)
	filter := gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{Field: model.FieldActivityID, Value: activityID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
