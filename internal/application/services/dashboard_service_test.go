package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

func newDashboardService(analytics *mockAnalyticsRepository, activity *mockActivityLogRepository) *DashboardService {
	service := NewDashboardService(analytics, activity, NewAuthorizationService())
	service.now = func() time.Time { return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) }
	return service
}

func TestDashboardService_KPIs(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	analytics.On("KPIStats", mock.Anything).Return(&repositories.KPIStats{
		TotalReservations:   42,
		Revenue:             12500,
		GrossRevenue:        14000,
		ActiveUsers:         17,
		LoyalClients:        3,
		PendingReservations: 5,
	}, nil)

	summary, err := service.KPIs(context.Background(), agentPrincipal())
	require.NoError(t, err)

	assert.Equal(t, 42, summary.TotalReservations)
	assert.Equal(t, 12500.0, summary.Revenue)
	assert.Equal(t, 14000.0, summary.GrossRevenue)
	assert.Equal(t, 3, summary.LoyalClients)
}

func TestDashboardService_KPIs_RequiresOperator(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	_, err := service.KPIs(context.Background(), clientPrincipal())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	analytics.AssertNotCalled(t, "KPIStats")
}

func TestDashboardService_KPIs_WrapsStorageFailure(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	analytics.On("KPIStats", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := service.KPIs(context.Background(), agentPrincipal())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAggregation))
}

func TestDashboardService_MonthlyRevenue_ZeroFillsAllMonths(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	analytics.On("MonthlyRevenue", mock.Anything, 2026).Return([]repositories.MonthlyRevenueRow{
		{Month: 2, Revenue: 800, Bookings: 4},
		{Month: 7, Revenue: 2400, Bookings: 9},
	}, nil)

	series, err := service.MonthlyRevenue(context.Background(), agentPrincipal())
	require.NoError(t, err)

	require.Len(t, series, 12)
	assert.Equal(t, "Jan", series[0].Month)
	assert.Equal(t, "Déc", series[11].Month)
	assert.Equal(t, 0.0, series[0].Revenue)
	assert.Equal(t, 800.0, series[1].Revenue)
	assert.Equal(t, 4, series[1].Bookings)
	assert.Equal(t, 2400.0, series[6].Revenue)
}

func TestDashboardService_TopDestinations_SharesSumToHundred(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	analytics.On("DestinationCounts", mock.Anything, 6).Return([]repositories.DestinationCount{
		{Name: "Marrakech", Count: 10},
		{Name: "Paris", Count: 6},
		{Name: "Tokyo", Count: 4},
	}, nil)

	result, err := service.TopDestinations(context.Background(), agentPrincipal())
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, 50.0, result[0].Share)
	assert.Equal(t, 30.0, result[1].Share)
	assert.Equal(t, 20.0, result[2].Share)
}

func TestDashboardService_TopDestinations_EmptyData(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	analytics.On("DestinationCounts", mock.Anything, 6).Return([]repositories.DestinationCount{}, nil)

	result, err := service.TopDestinations(context.Background(), agentPrincipal())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDashboardService_RecordActivity(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	activity.On("Record", mock.Anything, mock.AnythingOfType("*entities.ActivityLog")).Return(nil)

	err := service.RecordActivity(context.Background(), clientPrincipal(), RecordActivityInput{
		Action:     "Page réservation consultée",
		EntityType: "reservation",
		EntityID:   "res-1",
	})
	require.NoError(t, err)

	entry := activity.Calls[0].Arguments.Get(1).(*entities.ActivityLog)
	assert.Equal(t, clientPrincipal().UserID, entry.UserID)
	assert.Equal(t, "Page réservation consultée", entry.Action)
	assert.Equal(t, "res-1", entry.EntityID)
}

func TestDashboardService_RecordActivity_RequiresAuthentication(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	err := service.RecordActivity(context.Background(), nil, RecordActivityInput{
		Action:     "Page consultée",
		EntityType: "page",
		EntityID:   "home",
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	activity.AssertNotCalled(t, "Record")
}

func TestDashboardService_RecentActivity(t *testing.T) {
	analytics := new(mockAnalyticsRepository)
	activity := new(mockActivityLogRepository)
	service := newDashboardService(analytics, activity)

	activity.On("Recent", mock.Anything, 20).Return([]*repositories.ActivityLogDetail{
		{UserName: "Alice"},
	}, nil)

	entries, err := service.RecentActivity(context.Background(), agentPrincipal())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].UserName)
}
