package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/booking/model"
	"naturekids/shared/constant"
	gDto "naturekids/shared/dto"
	"naturekids/shared/logger"
	gRepo "naturekids/shared/repository"
	"naturekids/shared/timezone"
)

// Ledger records bookings per owner. Get returns the zero Booking when the
// id is unknown or belongs to someone else.
type Ledger interface {
	Insert(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, owner, id string) (model.Booking, error)
	ListByOwner(ctx context.Context, owner string) ([]model.Booking, error)
	// UpdateStatus moves the booking from one status to another and reports
	// whether it was in the from status.
	UpdateStatus(ctx context.Context, owner, id string, from, to model.Status) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Ledger {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Provide selects the store configured by STORE_DRIVER.
func Provide(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Ledger {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		return New(db, otel)
	}

	return NewMemory()
}

func ownedBy(owner, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldUserID, Value: owner, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (r *repositoryImpl) Get(ctx context.Context, owner, id string) (model.Booking, error) {
	return r.Repository.Get(ctx, ownedBy(owner, id)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, owner string) ([]model.Booking, error) {
	params := gDto.OrderBy(model.TableName + "." + model.FieldID)
	filter := gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{Field: model.FieldUserID, Value: owner, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

const updateStatusQuery = `UPDATE bookings SET status = :to, modified_at = :modified_at, modified_by = :modified_by
	WHERE id = :id AND user_id = :owner AND status = :from`

func (r *repositoryImpl) UpdateStatus(ctx context.Context, owner, id string, from, to model.Status) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, updateStatusQuery)

	result, err := r.db.Write.NamedExecContext(ctx, updateStatusQuery, map[string]any{
		"to":          string(to),
		"from":        string(from),
		"id":          id,
		"owner":       owner,
		"modified_at": timezone.Now(),
		"modified_by": owner,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
