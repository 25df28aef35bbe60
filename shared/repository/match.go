package repository

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"folio/infras/kvstore"
	"folio/shared/dto"
)

// normalize gives a Go value the shape it has after a JSON round trip, which is the shape
// every stored row value has.
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalizing %T: %w", value, err)
	}

	var out any
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("normalizing %T: %w", value, err)
	}

	return out, nil
}

// compareValues orders two normalized values. nil sorts first; RFC 3339 strings compare as instants.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch left := a.(type) {
	case float64:
		if right, ok := b.(float64); ok {
			return cmp.Compare(left, right)
		}
	case bool:
		if right, ok := b.(bool); ok {
			switch {
			case left == right:
				return 0
			case !left:
				return -1
			default:
				return 1
			}
		}
	case string:
		if right, ok := b.(string); ok {
			leftTime, leftErr := time.Parse(time.RFC3339Nano, left)
			rightTime, rightErr := time.Parse(time.RFC3339Nano, right)

			if leftErr == nil && rightErr == nil {
				return leftTime.Compare(rightTime)
			}

			return strings.Compare(left, right)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func equalValues(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}

	_, aList := a.([]any)
	_, bList := b.([]any)

	return !aList && !bList && compareValues(a, b) == 0
}

func matchFilter(row kvstore.Row, filter dto.Filter) (bool, error) {
	value, present := row[filter.Field]

	switch filter.Operator {
	case dto.FilterIsNull:
		return !present || value == nil, nil
	case dto.FilterIsNotNull:
		return present && value != nil, nil
	}

	if filter.Operator == dto.FilterOperatorLike {
		if value == nil {
			return false, nil
		}

		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(filter.Value))), nil
	}

	expected, err := normalize(filter.Value)
	if err != nil {
		return false, err
	}

	switch filter.Operator {
	case dto.FilterOperatorEq:
		return value != nil && equalValues(value, expected), nil
	case dto.FilterOperatorNotEq:
		return value != nil && !equalValues(value, expected), nil
	case dto.FilterOperatorLessEq:
		return value != nil && compareValues(value, expected) <= 0, nil
	case dto.FilterOperatorGreaterEq:
		return value != nil && compareValues(value, expected) >= 0, nil
	case dto.FilterOperatorIn:
		candidates, ok := expected.([]any)
		if !ok {
			return false, fmt.Errorf("in filter on %s needs a list value", filter.Field)
		}

		for _, candidate := range candidates {
			if value != nil && equalValues(value, candidate) {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("unknown filter operator %q", filter.Operator)
	}
}

func matchGroup(row kvstore.Row, group dto.FilterGroup) (bool, error) {
	if len(group.Filters) == 0 {
		return true, nil
	}

	anyOf := group.Operator == dto.FilterGroupOperatorOr

	for _, filter := range group.Filters {
		var (
			matched bool
			err     error
		)

		switch fill := filter.(type) {
		case dto.Filter:
			matched, err = matchFilter(row, fill)
		case dto.FilterGroup:
			matched, err = matchGroup(row, fill)
		default:
			return false, fmt.Errorf("unsupported filter %T", filter)
		}

		if err != nil {
			return false, err
		}

		if anyOf && matched {
			return true, nil
		}

		if !anyOf && !matched {
			return false, nil
		}
	}

	return !anyOf, nil
}
