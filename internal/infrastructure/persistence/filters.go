package persistence

import (
	"strings"

	"github.com/towerledger/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// applyLedgerFilter narrows a ledger listing by month and notes search and
// orders it newest first. table qualifies the columns so joined queries stay
// unambiguous.
func applyLedgerFilter(query *gorm.DB, table string, filter ledger.ListFilter) *gorm.DB {
	if filter.Month != nil {
		start, next := ledger.MonthRange(*filter.Month)
		query = query.Where(table+".created_at >= ? AND "+table+".created_at < ?", start, next)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER("+table+".notes) LIKE ?", pattern)
	}
	return query.Order(table + ".created_at DESC")
}
