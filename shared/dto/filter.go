package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Clause renders a named-parameter SQL condition for sqlx.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

// Filter is a single column condition. ArgName defaults to Field and must be
// unique within a group when the same column is filtered twice.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	column, arg := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, op, arg), map[string]any{arg: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, arg), map[string]any{arg: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterOperatorIn:
		return f.in(column, arg)
	default:
		return "", map[string]any{}
	}
}

// in expands a slice into one placeholder per element. An empty slice never
// matches.
func (f Filter) in(column, arg string) (string, map[string]any) {
	args := map[string]any{}

	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[arg] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, arg), args
	}

	if val.Len() == 0 {
		return "1 = 0", args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		key := fmt.Sprintf("%s_%d", arg, idx)
		args[key] = val.Index(idx).Interface()
		named[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
}

// FilterGroup joins its clauses with Operator (AND when empty).
type FilterGroup struct {
	Filters  []Clause
	Operator string
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		where, arg := filter.GetWhereClause()
		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
