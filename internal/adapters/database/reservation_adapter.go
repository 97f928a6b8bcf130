package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

var reservationColumns = []interface{}{
	"id", "user_id", "destination_id", "status", "check_in", "check_out",
	"total_amount", "notes", "created_at", "updated_at",
}

// ReservationAdapter implements the ReservationRepository interface. It is
// the sole writer of reservation rows; every mutation commits its ledger
// entry in the same transaction.
type ReservationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReservationAdapter creates a new reservation adapter
func NewReservationAdapter(client *postgres.Client) repositories.ReservationRepository {
	return &ReservationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new reservation and its ledger entry in one transaction
func (a *ReservationAdapter) Create(ctx context.Context, reservation *entities.Reservation, entry *entities.ActivityLog) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	now := time.Now()
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = now
	entry.EntityID = reservation.ID

	record := goqu.Record{
		"id":             reservation.ID,
		"user_id":        reservation.UserID,
		"destination_id": reservation.DestinationID,
		"status":         reservation.Status,
		"check_in":       reservation.CheckIn,
		"check_out":      reservation.CheckOut,
		"total_amount":   reservation.TotalAmount,
		"notes":          nullableString(reservation.Notes),
		"created_at":     reservation.CreatedAt,
		"updated_at":     reservation.UpdatedAt,
	}

	query, args, err := a.db.Insert("reservations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build reservation insert", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to create reservation", err)
	}

	if err := insertActivityLogTx(ctx, tx, a.db, entry); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit reservation", err)
	}

	return nil
}

// GetByID retrieves a reservation by ID
func (a *ReservationAdapter) GetByID(ctx context.Context, id string) (*entities.Reservation, error) {
	query, args, err := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reservation query", err)
	}

	reservation, err := scanReservation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reservation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reservation", err)
	}

	return reservation, nil
}

// ListByUser retrieves the reservations owned by a user, newest first
func (a *ReservationAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	query, args, err := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reservation list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []*entities.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reservation", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read reservations", err)
	}

	return reservations, nil
}

// List retrieves reservations with owner and destination names for the
// operator view, newest first.
func (a *ReservationAdapter) List(ctx context.Context, filter repositories.ReservationFilter) ([]*repositories.ReservationDetail, int, error) {
	base := a.db.From(goqu.T("reservations").As("r")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("r.user_id")})).
		Join(goqu.T("destinations").As("d"), goqu.On(goqu.Ex{"d.id": goqu.I("r.destination_id")}))

	if filter.Status != "" {
		base = base.Where(goqu.Ex{"r.status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(goqu.Or(
			goqu.I("u.name").ILike(pattern),
			goqu.I("d.name").ILike(pattern),
		))
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT(goqu.I("r.id"))).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build reservation count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count reservations", err)
	}

	ds := base.Select(
		goqu.I("r.id"), goqu.I("r.user_id"), goqu.I("r.destination_id"),
		goqu.I("r.status"), goqu.I("r.check_in"), goqu.I("r.check_out"),
		goqu.I("r.total_amount"), goqu.I("r.notes"), goqu.I("r.created_at"),
		goqu.I("r.updated_at"), goqu.I("u.name"), goqu.I("d.name"),
	).Order(goqu.I("r.created_at").Desc())

	if filter.PageSize > 0 {
		ds = ds.Limit(uint(filter.PageSize))
		if filter.Page > 1 {
			ds = ds.Offset(uint((filter.Page - 1) * filter.PageSize))
		}
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build reservation list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list reservations", err)
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
			return nil, 0, apperrors.NewInternalError("failed to scan reservation", err)
		}

		detail.Notes = notes.String
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to read reservations", err)
	}

	return details, total, nil
}

// UpdateStatus moves a reservation between statuses and appends its ledger
// entry, in one transaction. The WHERE clause re-checks the expected current
// status, so a transition raced by another operator is rejected instead of
// overwriting their write.
func (a *ReservationAdapter) UpdateStatus(ctx context.Context, id string, from, to entities.ReservationStatus, entry *entities.ActivityLog) (*entities.Reservation, error) {
	entry.EntityID = id

	query, args, err := a.db.Update("reservations").
		Set(goqu.Record{
			"status":     to,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id, "status": from}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build status update", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to update reservation status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}

	if affected == 0 {
		// Either the reservation is gone or its status moved under us.
		existsQuery, existsArgs, buildErr := a.db.Select("status").
			From("reservations").
			Where(goqu.Ex{"id": id}).
			ToSQL()
		if buildErr != nil {
			tx.Rollback()
			return nil, apperrors.NewInternalError("failed to build status check", buildErr)
		}

		var current string
		scanErr := tx.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&current)
		tx.Rollback()
		if scanErr == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("reservation with id %s not found", id))
		}
		if scanErr != nil {
			return nil, apperrors.NewInternalError("failed to check reservation status", scanErr)
		}
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("reservation status changed concurrently (now %q)", current))
	}

	if err := insertActivityLogTx(ctx, tx, a.db, entry); err != nil {
		tx.Rollback()
		return nil, err
	}

	selectQuery, selectArgs, err := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to build reservation query", err)
	}

	reservation, err := scanReservation(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to read updated reservation", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewInternalError("failed to commit status update", err)
	}

	return reservation, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*entities.Reservation, error) {
	reservation := &entities.Reservation{}
	var notes sql.NullString

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.DestinationID,
		&reservation.Status,
		&reservation.CheckIn,
		&reservation.CheckOut,
		&reservation.TotalAmount,
		&notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Notes = notes.String
	return reservation, nil
}
