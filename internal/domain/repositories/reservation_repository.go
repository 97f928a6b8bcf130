package repositories

import (
	"context"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

// ReservationRepository defines the transactional read/write boundary over
// reservation records. It is the sole writer of reservation rows. Mutating
// operations take the ledger entry describing them and must persist both in a
// single transaction.
type ReservationRepository interface {
	// Create persists a new reservation together with its ledger entry.
	// Either both rows commit or neither does.
	Create(ctx context.Context, reservation *entities.Reservation, entry *entities.ActivityLog) error

	// GetByID retrieves a reservation by ID
	GetByID(ctx context.Context, id string) (*entities.Reservation, error)

	// ListByUser retrieves the reservations owned by a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.Reservation, error)

	// List retrieves reservations with owner and destination names for the
	// operator view, newest first, and returns the total matching count.
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationDetail, int, error)

	// UpdateStatus moves a reservation from one status to another together
	// with its ledger entry, in one transaction. The expected current status
	// is re-checked inside the transaction; a reservation whose stored status
	// no longer matches yields a conflict error.
	UpdateStatus(ctx context.Context, id string, from, to entities.ReservationStatus, entry *entities.ActivityLog) (*entities.Reservation, error)
}

// ReservationFilter defines filters for the operator reservation listing.
// Search matches owner name or destination name, case-insensitive.
type ReservationFilter struct {
	Search   string
	Status   entities.ReservationStatus
	Page     int
	PageSize int
}

// ReservationDetail is a reservation joined with the names the operator table
// displays.
type ReservationDetail struct {
	entities.Reservation
	ClientName      string `json:"client"`
	DestinationName string `json:"destination_name"`
}
