package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/internal/domains/journey/model"
	"naturekids/shared/constant"
	gDto "naturekids/shared/dto"
	"naturekids/shared/logger"
	gRepo "naturekids/shared/repository"
	"time"
)

// Journal keeps each user's activity journey and the rewards it earned.
type Journal interface {
	Track(ctx context.Context, entry model.Entry) error
	// Get returns the zero Entry when the id is unknown or belongs to someone else.
	Get(ctx context.Context, owner, id string) (model.Entry, error)
	// Complete marks an in-progress entry completed and reports whether it was
	// in progress.
	Complete(ctx context.Context, owner, id string, at time.Time) (bool, error)
	// ListByOwner returns the newest entries first.
	ListByOwner(ctx context.Context, owner string) ([]model.Entry, error)
	// Award stores the reward unless the owner already holds one of its type,
	// and reports whether it was stored.
	Award(ctx context.Context, reward model.Reward) (bool, error)
	Rewards(ctx context.Context, owner string) ([]model.Reward, error)
}

type repositoryImpl struct {
	entries gRepo.Repository[model.Entry]
	rewards gRepo.Repository[model.Reward]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Journal {
	return &repositoryImpl{
		entries: gRepo.NewRepository[model.Entry](model.EntityEntry, model.TableEntries, model.FieldID, db, otel),
		rewards: gRepo.NewRepository[model.Reward](model.EntityReward, model.TableRewards, model.FieldID, db, otel),
		db:      db,
		otel:    otel,
	}
}

// Provide selects the store configured by STORE_DRIVER.
func Provide(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Journal {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		return New(db, otel)
	}

	return NewMemory()
}

func byOwner(table, owner string) gDto.Filter {
	return gDto.Filter{Field: model.FieldUserID, Value: owner, Operator: gDto.FilterOperatorEq, Table: table}
}

func (r *repositoryImpl) Track(ctx context.Context, entry model.Entry) error {
	return r.entries.Insert(ctx, entry) //nolint:wrapcheck
}

func (r *repositoryImpl) Get(ctx context.Context, owner, id string) (model.Entry, error) {
	filter := gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableEntries},
			byOwner(model.TableEntries, owner),
		},
	}

	return r.entries.Get(ctx, filter) //nolint:wrapcheck
}

const completeQuery = `UPDATE user_activities SET status = :completed, completed_at = :at, modified_at = :at, modified_by = :owner
	WHERE id = :id AND user_id = :owner AND status = :in_progress`

func (r *repositoryImpl) Complete(ctx context.Context, owner, id string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".journey.Complete")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, completeQuery)

	result, err := r.db.Write.NamedExecContext(ctx, completeQuery, map[string]any{
		"completed":   string(model.StatusCompleted),
		"in_progress": string(model.StatusInProgress),
		"at":          at,
		"id":          id,
		"owner":       owner,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to complete journey entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, owner string) ([]model.Entry, error) {
	params := gDto.QueryParams{SortBy: model.TableEntries + "." + model.FieldID, SortDir: gDto.SortDirDesc}
	filter := gDto.FilterGroup{Filters: []gDto.Clause{byOwner(model.TableEntries, owner)}}

	return r.entries.GetAll(ctx, params, filter) //nolint:wrapcheck
}

const awardQuery = `INSERT INTO rewards (id, user_id, reward_type, earned_at, created_at, modified_at, created_by, modified_by)
	VALUES (:id, :user_id, :reward_type, :earned_at, :created_at, :modified_at, :created_by, :modified_by)
	ON CONFLICT (user_id, reward_type) DO NOTHING`

func (r *repositoryImpl) Award(ctx context.Context, reward model.Reward) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".journey.Award")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, awardQuery)

	result, err := r.db.Write.NamedExecContext(ctx, awardQuery, reward)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to award reward: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *repositoryImpl) Rewards(ctx context.Context, owner string) ([]model.Reward, error) {
	params := gDto.OrderBy(model.TableRewards + "." + model.FieldID)
	filter := gDto.FilterGroup{Filters: []gDto.Clause{byOwner(model.TableRewards, owner)}}

	return r.rewards.GetAll(ctx, params, filter) //nolint:wrapcheck
}
