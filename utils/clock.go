package utils

import "time"

// StartOfDay returns midnight of t's calendar day in t's location. Truncating
// by 24h would cut on UTC boundaries and can land on the previous day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
