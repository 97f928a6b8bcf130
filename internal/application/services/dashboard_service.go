package services

import (
	"context"
	"math"
	"time"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

const (
	topDestinationsLimit    = 6
	recentActivityLimit     = 20
	recentReservationsLimit = 10
)

// monthLabels are the French month abbreviations the dashboard charts use,
// indexed by month number minus one.
var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jun",
	"Jul", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// KPISummary is the dashboard's headline figures.
type KPISummary struct {
	TotalReservations   int     `json:"total_reservations"`
	Revenue             float64 `json:"revenue"`
	GrossRevenue        float64 `json:"gross_revenue"`
	ActiveUsers         int     `json:"active_users"`
	LoyalClients        int     `json:"loyal_clients"`
	PendingReservations int     `json:"pending_reservations"`
}

// MonthPoint is one month of the revenue chart. The series always carries all
// twelve months; months without reservations are zero.
type MonthPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// TopDestination is one row of the popular destinations panel. Share is the
// destination's percentage of the reservations counted in the panel, rounded
// to one decimal.
type TopDestination struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// RecordActivityInput carries a client-submitted ledger entry, used by the
// frontend to journal actions that happen outside this backend.
type RecordActivityInput struct {
	Action     string
	EntityType string
	EntityID   string
	Details    string
}

// DashboardService assembles the analytics read models and accepts
// client-submitted ledger entries.
type DashboardService struct {
	analytics repositories.AnalyticsRepository
	activity  repositories.ActivityLogRepository
	authz     *AuthorizationService
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analytics repositories.AnalyticsRepository,
	activity repositories.ActivityLogRepository,
	authz *AuthorizationService,
) *DashboardService {
	return &DashboardService{
		analytics: analytics,
		activity:  activity,
		authz:     authz,
		now:       time.Now,
	}
}

// KPIs returns the headline dashboard figures
func (s *DashboardService) KPIs(ctx context.Context, principal *Principal) (*KPISummary, error) {
	if err := s.authz.Authorize(principal, OperationDashboardView); err != nil {
		return nil, err
	}

	stats, err := s.analytics.KPIStats(ctx)
	if err != nil {
		return nil, apperrors.NewAggregationError("failed to compute dashboard figures", err)
	}

	return &KPISummary{
		TotalReservations:   stats.TotalReservations,
		Revenue:             stats.Revenue,
		GrossRevenue:        stats.GrossRevenue,
		ActiveUsers:         stats.ActiveUsers,
		LoyalClients:        stats.LoyalClients,
		PendingReservations: stats.PendingReservations,
	}, nil
}

// MonthlyRevenue returns the current year's revenue chart with all twelve
// months present
func (s *DashboardService) MonthlyRevenue(ctx context.Context, principal *Principal) ([]MonthPoint, error) {
	if err := s.authz.Authorize(principal, OperationDashboardView); err != nil {
		return nil, err
	}

	rows, err := s.analytics.MonthlyRevenue(ctx, s.now().Year())
	if err != nil {
		return nil, apperrors.NewAggregationError("failed to compute monthly revenue", err)
	}

	series := make([]MonthPoint, 12)
	for i := range series {
		series[i].Month = monthLabels[i]
	}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		series[row.Month-1].Revenue = row.Revenue
		series[row.Month-1].Bookings = row.Bookings
	}

	return series, nil
}

// TopDestinations returns the most reserved destinations with their share of
// the panel's reservations
func (s *DashboardService) TopDestinations(ctx context.Context, principal *Principal) ([]TopDestination, error) {
	if err := s.authz.Authorize(principal, OperationDashboardView); err != nil {
		return nil, err
	}

	counts, err := s.analytics.DestinationCounts(ctx, topDestinationsLimit)
	if err != nil {
		return nil, apperrors.NewAggregationError("failed to compute top destinations", err)
	}

	total := 0
	for _, row := range counts {
		total += row.Count
	}

	result := make([]TopDestination, 0, len(counts))
	for _, row := range counts {
		share := 0.0
		if total > 0 {
			share = math.Round(float64(row.Count)/float64(total)*1000) / 10
		}
		result = append(result, TopDestination{
			Name:  row.Name,
			Count: row.Count,
			Share: share,
		})
	}

	return result, nil
}

// RecordActivity appends a client-submitted ledger entry. The entry is always
// attributed to the caller, never to a user named in the payload.
func (s *DashboardService) RecordActivity(ctx context.Context, principal *Principal, input RecordActivityInput) error {
	if err := s.authz.Authorize(principal, OperationActivityRecord); err != nil {
		return err
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Details:    input.Details,
	}
	return s.activity.Record(ctx, entry)
}

// RecentActivity returns the newest ledger entries with user names resolved
func (s *DashboardService) RecentActivity(ctx context.Context, principal *Principal) ([]*repositories.ActivityLogDetail, error) {
	if err := s.authz.Authorize(principal, OperationDashboardView); err != nil {
		return nil, err
	}

	entries, err := s.activity.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, apperrors.NewAggregationError("failed to read recent activity", err)
	}
	return entries, nil
}

// RecentReservations returns the newest reservations with owner and
// destination names resolved
func (s *DashboardService) RecentReservations(ctx context.Context, principal *Principal) ([]*repositories.ReservationDetail, error) {
	if err := s.authz.Authorize(principal, OperationDashboardView); err != nil {
		return nil, err
	}

	reservations, err := s.analytics.RecentReservations(ctx, recentReservationsLimit)
	if err != nil {
		return nil, apperrors.NewAggregationError("failed to read recent reservations", err)
	}
	return reservations, nil
}
