// Package ordering implements the move-up / move-down semantics of lists ordered by sort_order.
package ordering

import (
	"context"
	"fmt"
	"slices"

	"folio/shared/constant"
	"folio/shared/failure"
)

// Item is the part of an ordered row that moving needs.
type Item struct {
	ID        string
	SortOrder int
}

// Move swaps the sort order of the item identified by id with its neighbour in direction.
// items must already be sorted ascending by SortOrder. The returned slice holds the rows whose
// sort order changed; it is empty when the item is already at the edge of the list.
// When any two items share a sort order the whole list is renumbered to positions 0..n-1 with
// the move applied, and every item whose sort order differs is returned.
func Move(items []Item, id, direction string) ([]Item, error) {
	index := slices.IndexFunc(items, func(item Item) bool { return item.ID == id })
	if index == -1 {
		return nil, failure.NotFound("item not found")
	}

	var neighbour int

	switch direction {
	case constant.MoveUp:
		neighbour = index - 1
	case constant.MoveDown:
		neighbour = index + 1
	default:
		return nil, failure.BadRequestFromString("direction must be one of up down")
	}

	if neighbour < 0 || neighbour >= len(items) {
		return []Item{}, nil
	}

	if hasTies(items) {
		return renumber(items, index, neighbour), nil
	}

	current, other := items[index], items[neighbour]
	current.SortOrder, other.SortOrder = other.SortOrder, current.SortOrder

	return []Item{current, other}, nil
}

func hasTies(items []Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i].SortOrder == items[i-1].SortOrder {
			return true
		}
	}

	return false
}

func renumber(items []Item, index, neighbour int) []Item {
	moved := slices.Clone(items)
	moved[index], moved[neighbour] = moved[neighbour], moved[index]

	changed := []Item{}

	for position, item := range moved {
		if item.SortOrder != position {
			item.SortOrder = position
			changed = append(changed, item)
		}
	}

	return changed
}

// Next returns the sort order that appends a row after items.
func Next(items []Item) int {
	next := 0
	for _, item := range items {
		if item.SortOrder >= next {
			next = item.SortOrder + 1
		}
	}

	return next
}

// Reorder moves id within items and writes every changed sort order through update.
func Reorder(ctx context.Context, items []Item, id, direction string, update func(ctx context.Context, item Item) error) error {
	changed, err := Move(items, id, direction)
	if err != nil {
		return err
	}

	for _, item := range changed {
		if err = update(ctx, item); err != nil {
			return fmt.Errorf("writing sort order of %s: %w", item.ID, err)
		}
	}

	return nil
}
