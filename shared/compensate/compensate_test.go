package compensate_test

import (
	"context"
	"errors"
	"testing"

	"folio/shared/compensate"

	"github.com/stretchr/testify/assert"
)

func TestActions_RunNewestFirst(t *testing.T) {
	var order []string

	actions := compensate.Actions{}
	actions.Add("upload", func(context.Context) error {
		order = append(order, "upload")

		return nil
	})
	actions.Add("insert", func(context.Context) error {
		order = append(order, "insert")

		return errors.New("database gone")
	})
	actions.Add("images", func(context.Context) error {
		order = append(order, "images")

		return nil
	})

	assert.Equal(t, 3, actions.Len())

	failed := actions.Run(context.Background())

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"images", "insert", "upload"}, order)
	assert.Zero(t, actions.Len())
}
