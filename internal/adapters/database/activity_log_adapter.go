package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// ActivityLogAdapter implements the ActivityLogRepository interface. The
// activity_logs table is append-only: this adapter (and the tx-scoped insert
// it lends to sibling adapters) is its only writer, and no update or delete
// statement exists anywhere in the package.
type ActivityLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewActivityLogAdapter creates a new activity log adapter
func NewActivityLogAdapter(client *postgres.Client) repositories.ActivityLogRepository {
	return &ActivityLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Record appends a standalone ledger entry
func (a *ActivityLogAdapter) Record(ctx context.Context, entry *entities.ActivityLog) error {
	query, args, err := buildActivityLogInsert(a.db, entry)
	if err != nil {
		return apperrors.NewInternalError("failed to build activity log insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record activity log entry", err)
	}

	return nil
}

// Recent returns the newest entries joined with their actor names
func (a *ActivityLogAdapter) Recent(ctx context.Context, limit int) ([]*repositories.ActivityLogDetail, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := a.db.Select(
		goqu.I("l.id"), goqu.I("l.user_id"), goqu.I("l.action"),
		goqu.I("l.entity_type"), goqu.I("l.entity_id"), goqu.I("l.details"),
		goqu.I("l.created_at"), goqu.I("u.name"),
	).From(goqu.T("activity_logs").As("l")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("l.user_id")})).
		Order(goqu.I("l.created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build activity log query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activity log entries", err)
	}
	defer rows.Close()

	var entries []*repositories.ActivityLogDetail
	for rows.Next() {
		detail := &repositories.ActivityLogDetail{}
		var entityType, entityID, details sql.NullString

		err := rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.Action,
			&entityType,
			&entityID,
			&details,
			&detail.CreatedAt,
			&detail.UserName,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan activity log entry", err)
		}

		detail.EntityType = entityType.String
		detail.EntityID = entityID.String
		detail.Details = details.String

		entries = append(entries, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read activity log entries", err)
	}

	return entries, nil
}

// prepareActivityLog fills in the generated entry fields.
func prepareActivityLog(entry *entities.ActivityLog) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
}

// buildActivityLogInsert builds the ledger insert statement. Mutating
// adapters run it inside their own transaction so the entry commits or aborts
// together with the row it describes.
func buildActivityLogInsert(db *goqu.Database, entry *entities.ActivityLog) (string, []interface{}, error) {
	prepareActivityLog(entry)

	record := goqu.Record{
		"id":          entry.ID,
		"user_id":     entry.UserID,
		"action":      entry.Action,
		"entity_type": nullableString(entry.EntityType),
		"entity_id":   nullableString(entry.EntityID),
		"details":     nullableString(entry.Details),
		"created_at":  entry.CreatedAt,
	}

	return db.Insert("activity_logs").Rows(record).ToSQL()
}

// insertActivityLogTx appends a ledger entry within an open transaction.
func insertActivityLogTx(ctx context.Context, tx *sql.Tx, db *goqu.Database, entry *entities.ActivityLog) error {
	query, args, err := buildActivityLogInsert(db, entry)
	if err != nil {
		return apperrors.NewInternalError("failed to build activity log insert", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record activity log entry", err)
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
