package timezone_test

import (
	"testing"
	"time"

	"folio/shared/constant"
	"folio/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDaysAreLocal(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	timezone.SetLocation(jakarta)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	day, err := timezone.Parse(constant.DayFormat, "2025-06-14")
	require.NoError(t, err)

	assert.Equal(t, jakarta, day.Location())
	assert.Equal(t, "2025-06-13T17:00:00Z", day.UTC().Format(time.RFC3339))

	// 23:30 UTC is already the next day in Jakarta.
	late := time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", timezone.Format(late, constant.DayFormat))
	assert.Equal(t, jakarta, timezone.Now().Location())
}

func TestParseRejectsMalformedDays(t *testing.T) {
	_, err := timezone.Parse(constant.DayFormat, "14/06/2025")
	assert.Error(t, err)
}
