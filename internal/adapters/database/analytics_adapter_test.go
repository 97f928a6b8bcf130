package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
)

func setupMockAnalyticsAdapter(t *testing.T) (*AnalyticsAdapter, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	client := postgres.NewClientFromDB(mockDB)
	adapter := NewAnalyticsAdapter(client).(*AnalyticsAdapter)
	return adapter, mock
}

func TestAnalyticsAdapter_MonthlyRevenue_CountsAllStatuses(t *testing.T) {
	adapter, mock := setupMockAnalyticsAdapter(t)

	// Revenue comes from a conditional sum; the booking count has no status
	// condition, so the WHERE clause carries only the year.
	mock.ExpectQuery(`SELECT EXTRACT\(MONTH FROM created_at\), COALESCE\(SUM\(CASE\s+WHEN \("status" != 'annulée'\) THEN "total_amount" ELSE 0 END\), 0\), COUNT\("id"\) FROM "reservations" WHERE \(EXTRACT\(YEAR FROM created_at\) = 2026\) GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue", "bookings"}).
			AddRow(3, 900.0, 4).
			AddRow(7, 0.0, 2))

	rows, err := adapter.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Month)
	assert.Equal(t, 900.0, rows[0].Revenue)
	assert.Equal(t, 4, rows[0].Bookings)
	assert.Equal(t, 0.0, rows[1].Revenue)
	assert.Equal(t, 2, rows[1].Bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}
