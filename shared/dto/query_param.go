package dto

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"folio/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries list pagination and ordering. A zero Limit means unpaginated and an
// empty SortBy keeps storage order.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the URL. Malformed values are
// ignored. With paginate set, missing page and limit fall back to the defaults and limit is
// capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, paginate bool) {
	values := r.URL.Query()

	if page := positive(values.Get(constant.RequestParamPage)); page > 0 {
		q.Page = page
	}

	if limit := positive(values.Get(constant.RequestParamLimit)); limit > 0 {
		q.Limit = limit
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !paginate {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	q.Limit = min(q.Limit, constant.MaxValueLimit)
}

// Offset is the number of rows skipped before the current page. A page too far out to
// address saturates at math.MaxInt, which is past the end of any result.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}

// OrDefault fills an empty sort with by and dir.
func (q QueryParams) OrDefault(by, dir string) QueryParams {
	if q.SortBy == "" {
		q.SortBy = by
	}

	if q.SortDir == "" {
		q.SortDir = dir
	}

	return q
}

func positive(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}

	return n
}
