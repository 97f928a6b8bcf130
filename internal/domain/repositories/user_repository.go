package repositories

import (
	"context"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations. Users are
// never deleted; account lifecycle happens through status changes.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// List retrieves users newest first and returns the total matching count
	List(ctx context.Context, filter UserFilter) ([]*entities.User, int, error)

	// UpdateRole changes a user's role together with its ledger entry, in one
	// transaction.
	UpdateRole(ctx context.Context, id string, role entities.UserRole, entry *entities.ActivityLog) (*entities.User, error)

	// UpdateStatus changes a user's account status together with its ledger
	// entry, in one transaction.
	UpdateStatus(ctx context.Context, id string, status entities.UserStatus, entry *entities.ActivityLog) (*entities.User, error)
}

// UserFilter defines filters for listing users. Search matches name or email,
// case-insensitive.
type UserFilter struct {
	Search   string
	Role     entities.UserRole
	Page     int
	PageSize int
}
