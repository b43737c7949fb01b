package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayKeepsCalendarDayInZone(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, zone)

	got := StartOfDay(at)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, zone), got)
	assert.Equal(t, zone, got.Location())

	// truncating by 24h instead would fall back to the previous calendar day
	truncated := at.Truncate(24 * time.Hour)
	assert.NotEqual(t, got, truncated.In(zone))
}
