// Package query holds the serializable filter state that listing pages carry
// in the URL query string instead of server-side sessions.
package query

import (
	"net/url"
	"time"
)

const dateLayout = "2006-01-02"

// Filters is the listing filter state. Month and Year are normalized to the
// first instant of their month and year.
type Filters struct {
	TowerID string
	FlatID  string
	Month   *time.Time
	Year    *time.Time
	Search  string
}

// ParseFilters reads the filter state from a query string. Month defaults to
// the start of the current month, year to the start of the current year;
// malformed date strings reset to the default instead of erroring.
func ParseFilters(values url.Values, now time.Time) Filters {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	year := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	if raw := values.Get("month"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			month = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if raw := values.Get("year"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			year = time.Date(parsed.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		}
	}

	return Filters{
		TowerID: values.Get("tower_id"),
		FlatID:  values.Get("flat_id"),
		Month:   &month,
		Year:    &year,
		Search:  values.Get("search"),
	}
}

// Encode serializes the filter state back into query values. Empty fields are
// omitted so the round-trip stays minimal.
func (f Filters) Encode() url.Values {
	values := url.Values{}
	if f.TowerID != "" {
		values.Set("tower_id", f.TowerID)
	}
	if f.FlatID != "" {
		values.Set("flat_id", f.FlatID)
	}
	if f.Month != nil {
		values.Set("month", f.Month.Format(dateLayout))
	}
	if f.Year != nil {
		values.Set("year", f.Year.Format(dateLayout))
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

// WithTower switches the tower and clears the dependent flat selection.
func (f Filters) WithTower(towerID string) Filters {
	f.TowerID = towerID
	f.FlatID = ""
	return f
}

// RequireTower reports whether a tower is selected. Tower-scoped listings
// return the empty placeholder result without querying when it is not.
func (f Filters) RequireTower() bool {
	return f.TowerID != ""
}
