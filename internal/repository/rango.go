package repository

import "time"

// Rango is a half-open time window [Desde, Hasta) used by the
// aggregation queries.
type Rango struct {
	Desde time.Time
	Hasta time.Time
}

// RangoDia returns the window covering the calendar day of fecha in
// the location of fecha itself.
func RangoDia(fecha time.Time) Rango {
	desde := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	return Rango{Desde: desde, Hasta: desde.AddDate(0, 0, 1)}
}
