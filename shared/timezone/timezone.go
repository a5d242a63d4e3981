package timezone

import (
	"naturekids/config"
	"naturekids/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
})

// Location is the application timezone.
func Location() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

// Parse reads value as wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return t.In(location()).Format(layout)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.BookingDateFmt, value)
}

func FormatDate(t time.Time) string {
	return Format(t, constant.BookingDateFmt)
}
