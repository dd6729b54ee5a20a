package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/domain/report"
)

const periodLayout = "January 2006"

func money(v decimal.Decimal) string {
	return report.FormatMinus(v.InexactFloat64(), 2)
}

func flatLabel(number, floor int) string {
	return strconv.Itoa(number) + " / " + strconv.Itoa(floor)
}

// EstimatedExpensesColumns is the exportable layout of the estimates listing.
func EstimatedExpensesColumns() []Column[ledgerapp.EstimatedExpensesResponse] {
	return []Column[ledgerapp.EstimatedExpensesResponse]{
		{Name: "Period", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return r.Period.Format(periodLayout) }},
		{Name: "Electricity", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Electricity) }},
		{Name: "Water", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Water) }},
		{Name: "Waste", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Waste) }},
		{Name: "Guard", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Guard) }},
		{Name: "Elevator", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Elevator) }},
		{Name: "Others", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Amounts.Others) }},
		{Name: "Total", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return money(r.Total) }},
		{Name: "Notes", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return r.Notes }, NoPrint: true},
		{Name: "Attachments", Value: func(r ledgerapp.EstimatedExpensesResponse) string { return strconv.Itoa(len(r.Attachments)) }, NoExport: true, NoPrint: true},
	}
}

// SettlementColumns is the exportable layout of the settlements listing.
func SettlementColumns() []Column[ledgerapp.SettlementResponse] {
	return []Column[ledgerapp.SettlementResponse]{
		{Name: "Flat", Value: func(r ledgerapp.SettlementResponse) string { return flatLabel(r.FlatNumber, r.FlatFloor) }},
		{Name: "Period", Value: func(r ledgerapp.SettlementResponse) string { return r.Period.Format(periodLayout) }},
		{Name: "Share %", Value: func(r ledgerapp.SettlementResponse) string { return strconv.Itoa(r.PayPercentage) }},
		{Name: "Net", Value: func(r ledgerapp.SettlementResponse) string { return money(r.NetEstimatedExpenses) }},
		{Name: "Payed", Value: func(r ledgerapp.SettlementResponse) string { return money(r.PayedAmount) }},
		{Name: "Remaining", Value: func(r ledgerapp.SettlementResponse) string { return money(r.Remaining) }},
		{Name: "Notes", Value: func(r ledgerapp.SettlementResponse) string { return r.Notes }, NoPrint: true},
	}
}

// MonthlySettlementColumns is the exportable layout of the monthly
// settlements listing.
func MonthlySettlementColumns() []Column[ledgerapp.MonthlySettlementResponse] {
	return []Column[ledgerapp.MonthlySettlementResponse]{
		{Name: "Flat", Value: func(r ledgerapp.MonthlySettlementResponse) string { return flatLabel(r.FlatNumber, r.FlatFloor) }},
		{Name: "Period", Value: func(r ledgerapp.MonthlySettlementResponse) string { return r.Period.Format(periodLayout) }},
		{Name: "Electricity", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Electricity) }},
		{Name: "Water", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Water) }},
		{Name: "Waste", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Waste) }},
		{Name: "Guard", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Guard) }},
		{Name: "Elevator", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Elevator) }},
		{Name: "Others", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Amounts.Others) }},
		{Name: "Net", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.NetEstimatedExpenses) }},
		{Name: "Payed", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.PayedAmount) }},
		{Name: "Remaining", Value: func(r ledgerapp.MonthlySettlementResponse) string { return money(r.Remaining) }},
		{Name: "Notes", Value: func(r ledgerapp.MonthlySettlementResponse) string { return r.Notes }, NoPrint: true},
	}
}

// OpeningBalanceColumns is the exportable layout of the opening balances
// listing.
func OpeningBalanceColumns() []Column[ledgerapp.OpeningBalanceResponse] {
	return []Column[ledgerapp.OpeningBalanceResponse]{
		{Name: "Period", Value: func(r ledgerapp.OpeningBalanceResponse) string { return r.Period.Format(periodLayout) }},
		{Name: "Balance", Value: func(r ledgerapp.OpeningBalanceResponse) string { return money(r.Balance) }},
		{Name: "Notes", Value: func(r ledgerapp.OpeningBalanceResponse) string { return r.Notes }},
	}
}

// UserLogColumns is the exportable layout of the activity log listing.
func UserLogColumns() []Column[audit.UserLog] {
	return []Column[audit.UserLog]{
		{Name: "Time", Value: func(r audit.UserLog) string { return r.CreatedAt.Format(time.RFC3339) }},
		{Name: "Action", Value: func(r audit.UserLog) string { return r.Action }},
		{Name: "Status", Value: func(r audit.UserLog) string {
			if r.Status {
				return "success"
			}
			return "failure"
		}},
		{Name: "Details", Value: func(r audit.UserLog) string { return r.Details }},
	}
}
