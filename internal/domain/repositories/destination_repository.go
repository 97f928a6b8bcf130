package repositories

import (
	"context"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

// DestinationRepository is the read-only view over the destination catalog.
// Catalog writes belong to the catalog service.
type DestinationRepository interface {
	// GetByID retrieves a destination by ID
	GetByID(ctx context.Context, id string) (*entities.Destination, error)

	// List retrieves all catalog destinations ordered by name
	List(ctx context.Context) ([]*entities.Destination, error)
}
