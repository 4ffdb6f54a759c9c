package srs

import "time"

const day = 24 * time.Hour

// dayOf returns the calendar day of t in loc, as midnight UTC so that
// day arithmetic is exact.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of days from a to b. Both must come
// from dayOf.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / day)
}
