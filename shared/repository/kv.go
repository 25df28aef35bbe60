package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"folio/infras/kvstore"
	"folio/infras/otel"
	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

// KV is the key-value implementation of Store. A table is one JSON array; reads scan it and
// writes rewrite it under the table lock. Models are converted through encoding/json, so their
// json tags must match their db tags.
type KV[T any] struct {
	tables        *kvstore.Tables
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewKV[T any](entityName, tableName, primaryColumn string, tables *kvstore.Tables, otl otel.Otel) *KV[T] {
	return &KV[T]{
		tables:        tables,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columnsOf[T](),
	}
}

func (repo *KV[T]) spanName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op)
}

func (repo *KV[T]) toRow(model T) (kvstore.Row, error) {
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", repo.entity, err)
	}

	row := kvstore.Row{}
	if err = json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", repo.entity, err)
	}

	return row, nil
}

func (repo *KV[T]) fromRows(rows []kvstore.Row) ([]T, error) {
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", repo.entity, err)
	}

	models := []T{}
	if err = json.Unmarshal(raw, &models); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", kvstore.ErrCorrupt, repo.entity, err)
	}

	return models, nil
}

// prepare fills the primary key and timestamps a row is missing.
func (repo *KV[T]) prepare(row kvstore.Row) {
	if id, _ := row[repo.primaryColumn].(string); id == "" {
		if _, isNumeric := row[repo.primaryColumn].(float64); !isNumeric {
			row[repo.primaryColumn] = uuid.NewString()
		}
	}

	now := timezone.Now().Format(time.RFC3339Nano)

	for _, col := range []string{constant.FieldCreatedAt, constant.FieldUpdatedAt} {
		value, present := row[col]
		if !present {
			continue
		}

		stamp, _ := value.(string)
		if parsed, err := time.Parse(time.RFC3339Nano, stamp); err != nil || parsed.IsZero() {
			row[col] = now
		}
	}
}

func (repo *KV[T]) filterRows(rows []kvstore.Row, filter dto.FilterGroup) ([]kvstore.Row, error) {
	matched := []kvstore.Row{}

	for _, row := range rows {
		ok, err := matchGroup(row, filter)
		if err != nil {
			return nil, failure.BadRequest(err)
		}

		if ok {
			matched = append(matched, row)
		}
	}

	return matched, nil
}

func (repo *KV[T]) project(rows []kvstore.Row, columns []string) []kvstore.Row {
	if len(columns) == 0 {
		return rows
	}

	projected := make([]kvstore.Row, len(rows))
	for i, row := range rows {
		projected[i] = kvstore.Row{}

		for _, col := range columns {
			if value, ok := row[col]; ok {
				projected[i][col] = value
			}
		}
	}

	return projected
}

func (repo *KV[T]) insertRows(ctx context.Context, models []T) error {
	unlock := repo.tables.Lock(repo.table)
	defer unlock()

	rows, err := repo.tables.Read(ctx, repo.table)
	if err != nil {
		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	seen := map[any]bool{}
	for _, row := range rows {
		seen[row[repo.primaryColumn]] = true
	}

	for _, model := range models {
		row, err := repo.toRow(model)
		if err != nil {
			return err
		}

		repo.prepare(row)

		if seen[row[repo.primaryColumn]] {
			return failure.Conflict(fmt.Sprintf("%s already exists", repo.entity))
		}

		seen[row[repo.primaryColumn]] = true
		rows = append(rows, row)
	}

	if err = repo.tables.Write(ctx, repo.table, rows); err != nil {
		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *KV[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Insert"))
	defer scope.End()

	err := repo.insertRows(ctx, []T{model})
	scope.TraceIfError(&err)

	return err
}

func (repo *KV[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertBulk"))
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	err := repo.insertRows(ctx, models)
	scope.TraceIfError(&err)

	return err
}

func (repo *KV[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()

	var model T

	models, err := repo.GetAll(ctx, dto.QueryParams{Limit: 1}, filter, columns...)
	if err != nil {
		scope.TraceError(err)

		return model, err
	}

	if len(models) == 0 {
		return model, nil
	}

	return models[0], nil
}

func (repo *KV[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()

	if err := validateColumns(repo.entity, repo.columns, params, filter); err != nil {
		return []T{}, err
	}

	rows, err := repo.tables.Read(ctx, repo.table)
	if err != nil {
		scope.TraceError(err)

		return []T{}, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	rows, err = repo.filterRows(rows, filter)
	if err != nil {
		return []T{}, err
	}

	if params.SortBy != "" && params.SortDir != "" {
		slices.SortStableFunc(rows, func(a, b kvstore.Row) int {
			return compareValues(a[params.SortBy], b[params.SortBy])
		})

		if params.SortDir == dto.SortDirDesc {
			slices.Reverse(rows)
		}
	}

	rows = paginate(rows, params)

	return repo.fromRows(repo.project(rows, columns))
}

func paginate[E any](items []E, params dto.QueryParams) []E {
	if params.Limit <= 0 {
		return items
	}

	offset := params.Offset()
	if offset >= len(items) {
		return items[:0]
	}

	return items[offset:min(offset+params.Limit, len(items))]
}

func (repo *KV[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Exist"))
	defer scope.End()

	if filter.Empty() {
		return false, errRequiredFilter
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (repo *KV[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Count"))
	defer scope.End()

	if err := validateColumns(repo.entity, repo.columns, dto.QueryParams{}, filter); err != nil {
		return 0, err
	}

	rows, err := repo.tables.Read(ctx, repo.table)
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, err)
	}

	rows, err = repo.filterRows(rows, filter)
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (repo *KV[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Update"))
	defer scope.End()

	if filter.Empty() {
		return errRequiredFilter
	}

	if err := validateUpdate(repo.entity, repo.columns, mod); err != nil {
		return err
	}

	if err := validateColumns(repo.entity, repo.columns, dto.QueryParams{}, filter); err != nil {
		return err
	}

	normalized, err := normalize(mod)
	if err != nil {
		return err
	}

	changes, _ := normalized.(map[string]any)

	unlock := repo.tables.Lock(repo.table)
	defer unlock()

	rows, err := repo.tables.Read(ctx, repo.table)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	for _, row := range rows {
		ok, err := matchGroup(row, filter)
		if err != nil {
			return failure.BadRequest(err)
		}

		if !ok {
			continue
		}

		for col, value := range changes {
			row[col] = value
		}
	}

	if err = repo.tables.Write(ctx, repo.table, rows); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *KV[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Delete"))
	defer scope.End()

	if filter.Empty() {
		return errRequiredFilter
	}

	if err := validateColumns(repo.entity, repo.columns, dto.QueryParams{}, filter); err != nil {
		return err
	}

	unlock := repo.tables.Lock(repo.table)
	defer unlock()

	rows, err := repo.tables.Read(ctx, repo.table)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	kept := make([]kvstore.Row, 0, len(rows))

	for _, row := range rows {
		ok, err := matchGroup(row, filter)
		if err != nil {
			return failure.BadRequest(err)
		}

		if !ok {
			kept = append(kept, row)
		}
	}

	if err = repo.tables.Write(ctx, repo.table, kept); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	return nil
}
