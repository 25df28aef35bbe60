package dto

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is a single column predicate. Both repository backends evaluate the same operators.
type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

// FilterGroup joins filters and nested groups with Operator, AND when empty.
// Filters holds Filter and FilterGroup values.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorEq}
}

func Like(field string, value string) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorLike}
}

func In[V any](field string, values []V) Filter {
	return Filter{Field: field, Value: values, Operator: FilterOperatorIn}
}

func And(filters ...any) FilterGroup {
	return FilterGroup{Filters: filters, Operator: FilterGroupOperatorAnd}
}

func Or(filters ...any) FilterGroup {
	return FilterGroup{Filters: filters, Operator: FilterGroupOperatorOr}
}

// Empty reports whether the group constrains nothing.
func (f FilterGroup) Empty() bool {
	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			return false
		case FilterGroup:
			if !fill.Empty() {
				return false
			}
		}
	}

	return true
}

// Where renders the group as a sqlx named-parameter expression. Parameters are numbered
// p0, p1, ... in order of appearance, so a column may be constrained more than once.
func (f FilterGroup) Where() (string, map[string]any) {
	w := whereWriter{args: map[string]any{}}

	return w.group(f), w.args
}

// Columns lists every field referenced by the group and its nested groups, in order of appearance.
func (f FilterGroup) Columns() []string {
	columns := []string{}

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			columns = append(columns, fill.Field)
		case FilterGroup:
			columns = append(columns, fill.Columns()...)
		}
	}

	return columns
}

type whereWriter struct {
	args map[string]any
}

func (w *whereWriter) bind(value any) string {
	name := fmt.Sprintf("p%d", len(w.args))
	w.args[name] = value

	return ":" + name
}

func (w *whereWriter) group(g FilterGroup) string {
	parts := []string{}

	for _, filter := range g.Filters {
		var clause string

		switch fill := filter.(type) {
		case Filter:
			clause = w.filter(fill)
		case FilterGroup:
			clause = w.group(fill)
		}

		if clause != "" {
			parts = append(parts, clause)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	operator := g.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")"
}

func (w *whereWriter) filter(f Filter) string {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	if op, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s %s", column, op, w.bind(f.Value))
	}

	switch f.Operator {
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", column, w.bind(fmt.Sprintf("%%%v%%", f.Value)))
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
			return fmt.Sprintf("%s = %s", column, w.bind(f.Value))
		}

		if val.Len() == 0 {
			return "FALSE"
		}

		named := make([]string, val.Len())
		for idx := range val.Len() {
			named[idx] = w.bind(val.Index(idx).Interface())
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", "))
	case FilterIsNotNull:
		return column + " IS NOT NULL"
	case FilterIsNull:
		return column + " IS NULL"
	default:
		return ""
	}
}
