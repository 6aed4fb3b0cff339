package model

import "time"

// diaCalendario normalizes t to its calendar day as read in t's own
// location. Date-typed columns come back at UTC midnight while clock
// timestamps carry the configured zone; comparing the normalized days
// keeps same-day checks from flipping at the UTC boundary.
func diaCalendario(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
