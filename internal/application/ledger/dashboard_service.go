package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/report"
)

// DashboardResponse carries the landing page counters and the month-over-month
// settlement comparison.
type DashboardResponse struct {
	Towers                int64           `json:"towers"`
	Flats                 int64           `json:"flats"`
	Users                 int64           `json:"users"`
	CurrentMonthPayed     decimal.Decimal `json:"current_month_payed"`
	PreviousMonthPayed    decimal.Decimal `json:"previous_month_payed"`
	PayedChangePercentage string          `json:"payed_change_percentage"`
}

// DashboardService aggregates the counters shown on the landing page
type DashboardService struct {
	towerRepo      property.TowerRepository
	flatRepo       property.FlatRepository
	userRepo       identity.UserRepository
	settlementRepo ledger.SettlementRepository
	now            func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	towerRepo property.TowerRepository,
	flatRepo property.FlatRepository,
	userRepo identity.UserRepository,
	settlementRepo ledger.SettlementRepository,
) *DashboardService {
	return &DashboardService{
		towerRepo:      towerRepo,
		flatRepo:       flatRepo,
		userRepo:       userRepo,
		settlementRepo: settlementRepo,
		now:            time.Now,
	}
}

// Counts returns the entity counters plus the tower's payed settlement totals
// for the current and previous month.
func (s *DashboardService) Counts(ctx context.Context, towerID uuid.UUID) (*DashboardResponse, error) {
	towers, err := s.towerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	flats, err := s.flatRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current, err := s.monthTotal(ctx, towerID, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.monthTotal(ctx, towerID, ledger.MonthOf(now).AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Towers:                towers,
		Flats:                 flats,
		Users:                 users,
		CurrentMonthPayed:     current,
		PreviousMonthPayed:    previous,
		PayedChangePercentage: report.PercentageChange(previous, current),
	}, nil
}

// monthTotal sums the payed amounts of the tower's settlements in the month
// containing the given instant.
func (s *DashboardService) monthTotal(ctx context.Context, towerID uuid.UUID, in time.Time) (decimal.Decimal, error) {
	month := ledger.MonthOf(in)
	records, err := s.settlementRepo.FindByTower(ctx, towerID, ledger.ListFilter{Month: &month})
	if err != nil {
		return decimal.Zero, err
	}
	return report.SumBy(records, func(r ledger.Settlement) decimal.Decimal {
		return r.PayedAmount
	}), nil
}
