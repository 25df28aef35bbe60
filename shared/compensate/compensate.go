// Package compensate records undo steps for multi-step writes that cannot run in one transaction.
package compensate

import (
	"context"

	"github.com/rs/zerolog/log"
)

type action struct {
	name string
	fn   func(ctx context.Context) error
}

// Actions is a stack of compensating steps. The zero value is ready to use.
type Actions struct {
	steps []action
}

// Add records fn to undo a step that has just succeeded.
func (a *Actions) Add(name string, fn func(ctx context.Context) error) {
	a.steps = append(a.steps, action{name: name, fn: fn})
}

// Run undoes the recorded steps newest first. Every step is attempted; failures are logged
// and counted so a caller can report a partial rollback.
func (a *Actions) Run(ctx context.Context) (failed int) {
	for i := len(a.steps) - 1; i >= 0; i-- {
		step := a.steps[i]

		if err := step.fn(ctx); err != nil {
			failed++

			log.Error().Err(err).Str("step", step.name).Msg("compensating action failed")
		}
	}

	a.steps = nil

	return failed
}

// Len reports how many steps are recorded.
func (a *Actions) Len() int {
	return len(a.steps)
}
