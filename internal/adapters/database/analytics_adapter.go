package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// Owners with at least this many reservations count as loyal clients.
const loyalClientThreshold = 3

// AnalyticsAdapter implements the AnalyticsRepository interface. Grouping and
// aggregation happen in SQL; the service layer only shapes the results.
type AnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAnalyticsAdapter creates a new analytics adapter
func NewAnalyticsAdapter(client *postgres.Client) repositories.AnalyticsRepository {
	return &AnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// KPIStats returns the raw dashboard counters
func (a *AnalyticsAdapter) KPIStats(ctx context.Context) (*repositories.KPIStats, error) {
	stats := &repositories.KPIStats{}

	counters := []struct {
		name string
		ds   *goqu.SelectDataset
		dest interface{}
	}{
		{
			name: "total reservations",
			ds:   a.db.From("reservations").Select(goqu.COUNT("id")),
			dest: &stats.TotalReservations,
		},
		{
			name: "revenue",
			ds: a.db.From("reservations").
				Select(goqu.COALESCE(goqu.SUM("total_amount"), 0)).
				Where(goqu.I("status").Neq(entities.ReservationStatusCancelled)),
			dest: &stats.Revenue,
		},
		{
			name: "gross revenue",
			ds: a.db.From("reservations").
				Select(goqu.COALESCE(goqu.SUM("total_amount"), 0)),
			dest: &stats.GrossRevenue,
		},
		{
			name: "active users",
			ds: a.db.From("users").Select(goqu.COUNT("id")).
				Where(goqu.Ex{"status": entities.UserStatusActive}),
			dest: &stats.ActiveUsers,
		},
		{
			name: "loyal clients",
			ds: a.db.From(
				a.db.From("reservations").
					Select("user_id").
					GroupBy("user_id").
					Having(goqu.COUNT("id").Gte(loyalClientThreshold)).
					As("loyal"),
			).Select(goqu.COUNT(goqu.Star())),
			dest: &stats.LoyalClients,
		},
		{
			name: "pending reservations",
			ds: a.db.From("reservations").Select(goqu.COUNT("id")).
				Where(goqu.Ex{"status": entities.ReservationStatusPending}),
			dest: &stats.PendingReservations,
		},
	}

	for _, counter := range counters {
		query, args, err := counter.ds.ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build "+counter.name+" query", err)
		}
		if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(counter.dest); err != nil {
			return nil, apperrors.NewInternalError("failed to compute "+counter.name, err)
		}
	}

	return stats, nil
}

// MonthlyRevenue returns per-month revenue and booking counts for the year,
// grouped over reservation creation dates. Revenue excludes cancelled
// reservations, matching the KPI figure; the booking count covers every
// status.
func (a *AnalyticsAdapter) MonthlyRevenue(ctx context.Context, year int) ([]repositories.MonthlyRevenueRow, error) {
	month := goqu.L("EXTRACT(MONTH FROM created_at)")
	earnedAmount := goqu.Case().
		When(goqu.I("status").Neq(entities.ReservationStatusCancelled), goqu.I("total_amount")).
		Else(0)

	query, args, err := a.db.From("reservations").
		Select(
			month,
			goqu.COALESCE(goqu.SUM(earnedAmount), 0),
			goqu.COUNT("id"),
		).
		Where(goqu.L("EXTRACT(YEAR FROM created_at)").Eq(year)).
		GroupBy(month).
		Order(month.Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build monthly revenue query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute monthly revenue", err)
	}
	defer rows.Close()

	var result []repositories.MonthlyRevenueRow
	for rows.Next() {
		var row repositories.MonthlyRevenueRow
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Bookings); err != nil {
			return nil, apperrors.NewInternalError("failed to scan monthly revenue row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read monthly revenue", err)
	}

	return result, nil
}

// DestinationCounts returns the most reserved destinations. Ties are broken
// by name so the ordering is stable across refreshes.
func (a *AnalyticsAdapter) DestinationCounts(ctx context.Context, limit int) ([]repositories.DestinationCount, error) {
	query, args, err := a.db.From(goqu.T("reservations").As("r")).
		Join(goqu.T("destinations").As("d"), goqu.On(goqu.Ex{"d.id": goqu.I("r.destination_id")})).
		Select(goqu.I("d.name"), goqu.COUNT(goqu.I("r.id"))).
		GroupBy(goqu.I("d.name")).
		Order(goqu.COUNT(goqu.I("r.id")).Desc(), goqu.I("d.name").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build destination counts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute destination counts", err)
	}
	defer rows.Close()

	var result []repositories.DestinationCount
	for rows.Next() {
		var row repositories.DestinationCount
		if err := rows.Scan(&row.Name, &row.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan destination count", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read destination counts", err)
	}

	return result, nil
}

// RecentReservations returns the newest reservations with owner and
// destination names resolved
func (a *AnalyticsAdapter) RecentReservations(ctx context.Context, limit int) ([]*repositories.ReservationDetail, error) {
	query, args, err := a.db.From(goqu.T("reservations").As("r")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("r.user_id")})).
		Join(goqu.T("destinations").As("d"), goqu.On(goqu.Ex{"d.id": goqu.I("r.destination_id")})).
		Select(
			goqu.I("r.id"), goqu.I("r.user_id"), goqu.I("r.destination_id"),
			goqu.I("r.status"), goqu.I("r.check_in"), goqu.I("r.check_out"),
			goqu.I("r.total_amount"), goqu.I("r.notes"), goqu.I("r.created_at"),
			goqu.I("r.updated_at"), goqu.I("u.name"), goqu.I("d.name"),
		).
		Order(goqu.I("r.created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recent reservations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recent reservations", err)
	}
	defer rows.Close()

	var details []*repositories.ReservationDetail
	for rows.Next() {
		detail := &repositories.ReservationDetail{}
		var notes sql.NullString

		err := rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.DestinationID,
			&detail.Status,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.TotalAmount,
			&notes,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.ClientName,
			&detail.DestinationName,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan recent reservation", err)
		}

		detail.Notes = notes.String
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read recent reservations", err)
	}

	return details, nil
}
