package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"reflect"
	"strconv"
	"strings"

	"folio/shared/cache"
	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/timezone"

	"github.com/rs/zerolog/log"
)

// OptionalBool parses a query flag; empty or unparsable input means the flag was not given.
func OptionalBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Str("value", value).Msg("ignoring malformed boolean flag")

		return nil
	}

	return &parsed
}

// CalculateTotalPage reports how many pages of limit rows hold total rows, never less than one.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns an update request into column changes keyed by db tag. Nil pointers and
// zero values are left out; set pointers are dereferenced so an explicit false or 0 applies.
// updated_at is always stamped.
func TransformFields(data any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	changes := map[string]any{
		constant.FieldUpdatedAt: timezone.Now(),
	}

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		field := val.Field(index)

		if column == "" || column == "-" || field.IsZero() {
			continue
		}

		changes[column] = reflect.Indirect(field).Interface()
	}

	return changes
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterByField(fieldID, id, table)
}

func FilterByField(field string, value any, table string) dto.FilterGroup {
	filter := dto.Eq(field, value)
	filter.Table = table

	return dto.And(filter)
}

// BuildCacheKey joins a cache prefix with the identifying parts of a cached value.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its params and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{params, filter})
	if err != nil {
		payload = fmt.Appendf(nil, "%v|%v", params, filter)
	}

	hasher := fnv.New64a()
	_, _ = hasher.Write(payload)

	return BuildCacheKey(prefix, strconv.FormatUint(hasher.Sum64(), 16))
}

// InvalidateCaches drops every cached entry under prefix; failures are logged, never returned.
func InvalidateCaches(ctx context.Context, store cache.Cache, prefix string) {
	if err := store.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
