package ledger

import "time"

// MonthOf truncates a time to the first instant of its calendar month. Ledger
// rows store this as their period so that per-month uniqueness can live in a
// plain unique index.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// YearOf truncates a time to the first instant of its calendar year.
func YearOf(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the half-open interval [start, next) covering the
// calendar month of t.
func MonthRange(t time.Time) (start, next time.Time) {
	start = MonthOf(t)
	return start, start.AddDate(0, 1, 0)
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
