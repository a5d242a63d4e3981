package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/shared/timezone"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestFormat_ConvertsToAppLocation(t *testing.T) {
	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, instant.In(timezone.Location()).Format(time.RFC3339), timezone.Format(instant, time.RFC3339))
}

func TestParseDate(t *testing.T) {
	parsed, err := timezone.ParseDate("2024-04-15")
	require.NoError(t, err)

	assert.Equal(t, timezone.Location(), parsed.Location())
	assert.Equal(t, "2024-04-15", timezone.FormatDate(parsed))

	_, err = timezone.ParseDate("15-04-2024")
	assert.Error(t, err)
}
