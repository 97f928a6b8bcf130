package repositories

import (
	"context"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

// ActivityLogRepository is the append-only activity ledger. There is no
// update or delete operation; entries written alongside a mutation share that
// mutation's transaction.
type ActivityLogRepository interface {
	// Record appends a standalone ledger entry
	Record(ctx context.Context, entry *entities.ActivityLog) error

	// Recent returns the newest entries with their actor names, newest first.
	// The result is a snapshot taken at call time.
	Recent(ctx context.Context, limit int) ([]*ActivityLogDetail, error)
}

// ActivityLogDetail is a ledger entry joined with its actor's name.
type ActivityLogDetail struct {
	entities.ActivityLog
	UserName string `json:"user"`
}
