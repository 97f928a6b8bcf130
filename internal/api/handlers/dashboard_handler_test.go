package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) KPIs(ctx context.Context, principal *services.Principal) (*services.KPISummary, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.KPISummary), args.Error(1)
}

func (m *mockDashboardService) MonthlyRevenue(ctx context.Context, principal *services.Principal) ([]services.MonthPoint, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.MonthPoint), args.Error(1)
}

func (m *mockDashboardService) TopDestinations(ctx context.Context, principal *services.Principal) ([]services.TopDestination, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.TopDestination), args.Error(1)
}

func (m *mockDashboardService) RecentActivity(ctx context.Context, principal *services.Principal) ([]*repositories.ActivityLogDetail, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ActivityLogDetail), args.Error(1)
}

func (m *mockDashboardService) RecentReservations(ctx context.Context, principal *services.Principal) ([]*repositories.ReservationDetail, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ReservationDetail), args.Error(1)
}

func (m *mockDashboardService) RecordActivity(ctx context.Context, principal *services.Principal, input services.RecordActivityInput) error {
	args := m.Called(ctx, principal, input)
	return args.Error(0)
}

func TestDashboardHandler_KPIs_SurfacesAggregationFailure(t *testing.T) {
	service := new(mockDashboardService)
	handler := NewDashboardHandler(service, service)

	service.On("KPIs", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAggregationError("failed to compute dashboard figures", assert.AnError))

	req := newAuthedRequest(t, http.MethodGet, "/api/admin/dashboard/kpis", "")
	rec := httptest.NewRecorder()

	handler.KPIs(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to compute dashboard figures", body["error"])
}

func TestDashboardHandler_KPIs(t *testing.T) {
	service := new(mockDashboardService)
	handler := NewDashboardHandler(service, service)

	service.On("KPIs", mock.Anything, mock.Anything).
		Return(&services.KPISummary{TotalReservations: 42, Revenue: 12500}, nil)

	req := newAuthedRequest(t, http.MethodGet, "/api/admin/dashboard/kpis", "")
	rec := httptest.NewRecorder()

	handler.KPIs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary services.KPISummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 42, summary.TotalReservations)
}

func TestDashboardHandler_RecordActivity(t *testing.T) {
	service := new(mockDashboardService)
	handler := NewDashboardHandler(service, service)

	service.On("RecordActivity", mock.Anything, mock.AnythingOfType("*services.Principal"),
		mock.AnythingOfType("services.RecordActivityInput")).Return(nil)

	req := newAuthedRequest(t, http.MethodPost, "/api/logs",
		`{"action":"Page réservation consultée","entity_type":"reservation","entity_id":"res-1"}`)
	rec := httptest.NewRecorder()

	handler.RecordActivity(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	input := service.Calls[0].Arguments.Get(2).(services.RecordActivityInput)
	assert.Equal(t, "Page réservation consultée", input.Action)
	assert.Equal(t, "res-1", input.EntityID)
}

func TestDashboardHandler_RecordActivity_RejectsMissingFields(t *testing.T) {
	service := new(mockDashboardService)
	handler := NewDashboardHandler(service, service)

	req := newAuthedRequest(t, http.MethodPost, "/api/logs", `{"action":"Page consultée"}`)
	rec := httptest.NewRecorder()

	handler.RecordActivity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "RecordActivity")
}
