package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

func setupMockAdapter(t *testing.T) (*ReservationAdapter, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	client := postgres.NewClientFromDB(mockDB)
	adapter := NewReservationAdapter(client).(*ReservationAdapter)
	return adapter, mock
}

func testReservation() *entities.Reservation {
	return &entities.Reservation{
		UserID:        "user-1",
		DestinationID: "dest-1",
		Status:        entities.ReservationStatusPending,
		CheckIn:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		TotalAmount:   450,
	}
}

func testLedgerEntry() *entities.ActivityLog {
	return &entities.ActivityLog{
		UserID:     "user-1",
		Action:     "Nouvelle réservation créée",
		EntityType: "reservation",
	}
}

func TestReservationAdapter_Create(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "reservations"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "activity_logs"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reservation := testReservation()
	entry := testLedgerEntry()

	err := adapter.Create(context.Background(), reservation, entry)
	require.NoError(t, err)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, reservation.ID, entry.EntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationAdapter_Create_RollsBackWhenLedgerFails(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "reservations"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "activity_logs"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := adapter.Create(context.Background(), testReservation(), testLedgerEntry())
	require.Error(t, err)

	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationAdapter_GetByID_NotFound(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "reservations"`).WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReservationAdapter_UpdateStatus(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	now := time.Now()
	columns := []string{
		"id", "user_id", "destination_id", "status", "check_in", "check_out",
		"total_amount", "notes", "created_at", "updated_at",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "activity_logs"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM "reservations"`).WillReturnRows(
		sqlmock.NewRows(columns).AddRow(
			"res-1", "user-1", "dest-1", string(entities.ReservationStatusConfirmed),
			now, now.Add(72*time.Hour), 450.0, nil, now, now,
		),
	)
	mock.ExpectCommit()

	entry := testLedgerEntry()
	reservation, err := adapter.UpdateStatus(context.Background(), "res-1",
		entities.ReservationStatusPending, entities.ReservationStatusConfirmed, entry)
	require.NoError(t, err)

	assert.Equal(t, entities.ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, "res-1", entry.EntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationAdapter_UpdateStatus_ConflictOnRacedTransition(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "status" FROM "reservations"`).WillReturnRows(
		sqlmock.NewRows([]string{"status"}).AddRow(string(entities.ReservationStatusPaid)),
	)
	mock.ExpectRollback()

	_, err := adapter.UpdateStatus(context.Background(), "res-1",
		entities.ReservationStatusConfirmed, entities.ReservationStatusCancelled, testLedgerEntry())
	require.Error(t, err)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationAdapter_UpdateStatus_NotFound(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "status" FROM "reservations"`).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := adapter.UpdateStatus(context.Background(), "missing",
		entities.ReservationStatusPending, entities.ReservationStatusConfirmed, testLedgerEntry())
	require.Error(t, err)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
