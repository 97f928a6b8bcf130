package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *entities.Reservation, entry *entities.ActivityLog) error {
	args := m.Called(ctx, reservation, entry)
	return args.Error(0)
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*entities.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

func (m *mockReservationRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reservation), args.Error(1)
}

func (m *mockReservationRepository) List(ctx context.Context, filter repositories.ReservationFilter) ([]*repositories.ReservationDetail, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*repositories.ReservationDetail), args.Int(1), args.Error(2)
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id string, from, to entities.ReservationStatus, entry *entities.ActivityLog) (*entities.Reservation, error) {
	args := m.Called(ctx, id, from, to, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

type mockDestinationRepository struct {
	mock.Mock
}

func (m *mockDestinationRepository) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Destination), args.Error(1)
}

func (m *mockDestinationRepository) List(ctx context.Context) ([]*entities.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Destination), args.Error(1)
}

type mockAnalyticsRepository struct {
	mock.Mock
}

func (m *mockAnalyticsRepository) KPIStats(ctx context.Context) (*repositories.KPIStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.KPIStats), args.Error(1)
}

func (m *mockAnalyticsRepository) MonthlyRevenue(ctx context.Context, year int) ([]repositories.MonthlyRevenueRow, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.MonthlyRevenueRow), args.Error(1)
}

func (m *mockAnalyticsRepository) DestinationCounts(ctx context.Context, limit int) ([]repositories.DestinationCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.DestinationCount), args.Error(1)
}

func (m *mockAnalyticsRepository) RecentReservations(ctx context.Context, limit int) ([]*repositories.ReservationDetail, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ReservationDetail), args.Error(1)
}

type mockActivityLogRepository struct {
	mock.Mock
}

func (m *mockActivityLogRepository) Record(ctx context.Context, entry *entities.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockActivityLogRepository) Recent(ctx context.Context, limit int) ([]*repositories.ActivityLogDetail, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ActivityLogDetail), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role entities.UserRole, entry *entities.ActivityLog) (*entities.User, error) {
	args := m.Called(ctx, id, role, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdateStatus(ctx context.Context, id string, status entities.UserStatus, entry *entities.ActivityLog) (*entities.User, error) {
	args := m.Called(ctx, id, status, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}
