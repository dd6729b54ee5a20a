package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 7, 14, 15, 30, 0, 0, time.UTC)

func TestParseFiltersDefaults(t *testing.T) {
	filters := ParseFilters(url.Values{}, testNow)

	require.NotNil(t, filters.Month)
	require.NotNil(t, filters.Year)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), *filters.Month)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filters.Year)
	assert.Empty(t, filters.TowerID)
	assert.False(t, filters.RequireTower())
}

func TestParseFiltersExplicitValues(t *testing.T) {
	values := url.Values{}
	values.Set("tower_id", "abc")
	values.Set("flat_id", "def")
	values.Set("month", "2026-03-15")
	values.Set("year", "2025-01-01")
	values.Set("search", "invoice")

	filters := ParseFilters(values, testNow)

	assert.Equal(t, "abc", filters.TowerID)
	assert.Equal(t, "def", filters.FlatID)
	// Dates are snapped to period start regardless of the day sent
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *filters.Month)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *filters.Year)
	assert.Equal(t, "invoice", filters.Search)
}

func TestParseFiltersMalformedDatesFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("month", "not-a-date")
	values.Set("year", "2026-13-45")

	filters := ParseFilters(values, testNow)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), *filters.Month)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filters.Year)
}

func TestEncodeRoundTrip(t *testing.T) {
	values := url.Values{}
	values.Set("tower_id", "t1")
	values.Set("month", "2026-02-01")

	filters := ParseFilters(values, testNow)
	encoded := filters.Encode()

	assert.Equal(t, "t1", encoded.Get("tower_id"))
	assert.Equal(t, "2026-02-01", encoded.Get("month"))
	assert.Empty(t, encoded.Get("flat_id"))
	assert.Empty(t, encoded.Get("search"))

	again := ParseFilters(encoded, testNow)
	assert.Equal(t, filters.TowerID, again.TowerID)
	assert.Equal(t, *filters.Month, *again.Month)
}

func TestWithTowerClearsFlat(t *testing.T) {
	filters := Filters{TowerID: "t1", FlatID: "f1"}

	switched := filters.WithTower("t2")

	assert.Equal(t, "t2", switched.TowerID)
	assert.Empty(t, switched.FlatID)
	assert.True(t, switched.RequireTower())
}
