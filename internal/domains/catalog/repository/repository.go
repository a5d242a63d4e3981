package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/catalog/model"
	"naturekids/shared"
	gDto "naturekids/shared/dto"
	gRepo "naturekids/shared/repository"
)

// Activity is a read-only catalog source. Get returns the zero Activity when
// the id is unknown.
type Activity interface {
	Get(ctx context.Context, id int64) (model.Activity, error)
	List(ctx context.Context, filter model.Filter) ([]model.Activity, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Activity]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Activity](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Provide selects the catalog source configured by STORE_CATALOG_SOURCE.
func Provide(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Activity {
	if cfg.Store.CatalogSource == config.CatalogSourcePostgres {
		return New(db, otel)
	}

	return NewStatic(otel)
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (model.Activity, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) List(ctx context.Context, filter model.Filter) ([]model.Activity, error) {
	params := gDto.OrderBy(model.TableName + "." + model.FieldID)

	return r.GetAll(ctx, params, toFilterGroup(filter)) //nolint:wrapcheck
}

func toFilterGroup(filter model.Filter) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if len(filter.Locations) > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldLocation, Value: filter.Locations, Operator: gDto.FilterOperatorIn, Table: model.TableName,
		})
	}

	if filter.MinPrice > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "min_price", Field: model.FieldPrice, Value: filter.MinPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	if filter.MaxPrice > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "max_price", Field: model.FieldPrice, Value: filter.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
		})
	}

	if filter.MinRating > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "min_rating", Field: model.FieldRating, Value: filter.MinRating, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	if filter.Search != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName: "search", Field: model.FieldTitle, Value: filter.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName,
		})
	}

	return group
}
