package repositories

import (
	"context"
)

// AnalyticsRepository exposes the grouped and aggregated reads the dashboard
// is computed from. Every call recomputes from the current data; there is no
// caching layer, so dashboard numbers are at most one committing transaction
// behind.
type AnalyticsRepository interface {
	// KPIStats returns the raw dashboard counters
	KPIStats(ctx context.Context) (*KPIStats, error)

	// MonthlyRevenue returns one row per month that has reservations created
	// in the given year. Months without reservations are absent; the caller
	// zero-fills.
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenueRow, error)

	// DestinationCounts returns the most reserved destinations with their
	// reservation counts, ordered by count descending then name ascending.
	DestinationCounts(ctx context.Context, limit int) ([]DestinationCount, error)

	// RecentReservations returns the newest reservations with owner and
	// destination names, newest first.
	RecentReservations(ctx context.Context, limit int) ([]*ReservationDetail, error)
}

// KPIStats holds the raw counters behind the KPI summary. Revenue carries the
// accounting figure (cancelled reservations excluded) next to the gross sum
// over every status, so the difference stays visible in the payload.
type KPIStats struct {
	TotalReservations   int
	Revenue             float64
	GrossRevenue        float64
	ActiveUsers         int
	LoyalClients        int
	PendingReservations int
}

// MonthlyRevenueRow is one month's aggregate of reservation revenue and count.
type MonthlyRevenueRow struct {
	Month    int
	Revenue  float64
	Bookings int
}

// DestinationCount is a destination's reservation count.
type DestinationCount struct {
	Name  string
	Count int
}
