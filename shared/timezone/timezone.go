// Package timezone pins timestamps to the studio's local zone (APP_TIMEZONE, IANA name).
// Event dates are calendar days in that zone, so parsing and formatting go through here.
package timezone

import (
	"sync"
	"time"

	"folio/config"

	"github.com/rs/zerolog/log"
)

var (
	location *time.Location
	once     sync.Once
	mu       sync.RWMutex
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")

		loc = time.UTC
	}

	mu.Lock()
	if location == nil {
		location = loc
	}
	mu.Unlock()
}

// GetLocation returns the studio's zone, loading it from configuration on first use.
func GetLocation() *time.Location {
	once.Do(load)

	mu.RLock()
	defer mu.RUnlock()

	return location
}

// SetLocation overrides the configured zone.
func SetLocation(loc *time.Location) {
	once.Do(func() {})

	mu.Lock()
	location = loc
	mu.Unlock()
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as a wall-clock time in the studio's zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
