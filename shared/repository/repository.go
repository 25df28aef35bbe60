package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/shared/dto"
	"folio/shared/failure"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Reader is the query half of Store. Get returns the zero value when nothing matches and
// GetAll without a sort keeps storage order.
type Reader[T any] interface {
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
}

// Writer is the single-row write half of Store. Update and Delete touch exactly the matching
// rows; Delete refuses an empty filter.
type Writer[T any] interface {
	Insert(ctx context.Context, model T) error
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
}

// Store is the row-level contract both backends implement.
type Store[T any] interface {
	Reader[T]
	Writer[T]
	InsertBulk(ctx context.Context, models []T) error
}

// New returns the Postgres repository when the datastore has a Postgres connection and the
// key-value repository otherwise.
func New[T any](entityName, tableName, primaryColumn string, ds *datastore.Datastore, otl otel.Otel) Store[T] {
	if ds.Postgres != nil {
		return NewSQL[T](entityName, tableName, primaryColumn, ds.Postgres, otl)
	}

	return NewKV[T](entityName, tableName, primaryColumn, ds.Tables, otl)
}

// getColumns returns the db tags of T in declaration order, descending into embedded structs.
func getColumns(reflectType reflect.Type) []string {
	columns := []string{}

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		if dbTag := field.Tag.Get("db"); dbTag != "" && dbTag != "-" {
			columns = append(columns, dbTag)
		}
	}

	return columns
}

func columnsOf[T any]() []string {
	var zero T

	return getColumns(reflect.TypeOf(zero))
}

// validateColumns rejects sort and filter columns the entity does not have. Column names end up
// in SQL text, so this is also what keeps user supplied sort_by out of the query.
func validateColumns(entity string, known []string, params dto.QueryParams, filter dto.FilterGroup) error {
	if params.SortBy != "" && !slices.Contains(known, params.SortBy) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot sort %s by %s", entity, params.SortBy))
	}

	if params.SortDir != "" && params.SortDir != dto.SortDirAsc && params.SortDir != dto.SortDirDesc {
		return failure.BadRequestFromString("sort_dir must be one of ASC DESC")
	}

	for _, col := range filter.Columns() {
		if !slices.Contains(known, col) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot filter %s by %s", entity, col))
		}
	}

	return nil
}

func validateUpdate(entity string, known []string, mod map[string]any) error {
	for col := range mod {
		if !slices.Contains(known, col) {
			return fmt.Errorf("unknown column %s on %s", col, entity)
		}
	}

	return nil
}
