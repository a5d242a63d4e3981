package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"naturekids/infras/otel"
	"naturekids/infras/postgres"
	"naturekids/shared/constant"
	"naturekids/shared/dto"
	"naturekids/shared/logger"
	"reflect"
	"slices"
	"strings"
)

const setArgPrefix = "set_"

var errRequiredFilter = errors.New("required filter")

// Repository is a generic sqlx table gateway. Columns come from the `db` tags
// of T, including embedded structs such as model.Metadata.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []string
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   table,
		entity:  entity,
		primary: primary,
		columns: dbColumns(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) trace(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return "WHERE " + clause, args
}

func (repo *Repository[T]) selectColumns(only ...string) string {
	columns := make([]string, 0, len(repo.columns))

	for _, name := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}

		columns = append(columns, repo.table+"."+name)
	}

	return strings.Join(columns, ", ")
}

// get runs a single-row read into dest. Errors are returned unwrapped so
// callers can match sql.ErrNoRows.
func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, query string, dest any, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, action, query string, args any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.trace(ctx, "Insert")
	defer scope.End()

	placeholders := make([]string, len(repo.columns))
	for i, name := range repo.columns {
		placeholders[i] = ":" + name
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))

	return repo.exec(ctx, scope, "insert data", query, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.trace(ctx, "Exist")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	if err := repo.get(ctx, scope, query, &exist, args); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.trace(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.selectColumns(columns...), repo.table, where)

	err := repo.get(ctx, scope, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.trace(ctx, "GetAll")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.selectColumns(columns...), repo.table, where)

	if params.SortBy != "" && params.SortDir != "" {
		query += fmt.Sprintf(" ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query += " LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			query += " OFFSET :offset"
		}
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	models := []T{}
	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.trace(ctx, "Count")
	defer scope.End()

	var count int

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primary, repo.table, where)

	if err := repo.get(ctx, scope, query, &count, args); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// Update sets the given columns on every matching row. Values are bound under
// a prefix so they never collide with filter arguments.
func (repo *Repository[T]) Update(ctx context.Context, values map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.trace(ctx, "Update")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	sets := make([]string, 0, len(values))

	for _, name := range slices.Sorted(maps.Keys(values)) {
		sets = append(sets, fmt.Sprintf("%s = :%s%s", name, setArgPrefix, name))
		args[setArgPrefix+name] = values[name]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)

	return repo.exec(ctx, scope, "update data", query, args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.trace(ctx, "Delete")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

func dbColumns(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
