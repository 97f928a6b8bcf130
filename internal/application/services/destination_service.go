package services

import (
	"context"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
)

// DestinationService exposes the read-only destination catalog.
type DestinationService struct {
	repo repositories.DestinationRepository
}

// NewDestinationService creates a new destination service
func NewDestinationService(repo repositories.DestinationRepository) *DestinationService {
	return &DestinationService{repo: repo}
}

// List returns the full catalog
func (s *DestinationService) List(ctx context.Context) ([]*entities.Destination, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single destination
func (s *DestinationService) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	return s.repo.GetByID(ctx, id)
}
