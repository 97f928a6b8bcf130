package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

var destinationColumns = []interface{}{
	"id", "name", "country", "continent", "type", "best_season", "avg_rating",
	"annual_visitors", "unesco_site", "photo_url", "avg_cost_usd", "description",
}

// DestinationAdapter implements the DestinationRepository interface using
// PostgreSQL. The catalog is read-only from this service's point of view.
type DestinationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDestinationAdapter creates a new destination adapter
func NewDestinationAdapter(client *postgres.Client) repositories.DestinationRepository {
	return &DestinationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a destination by ID
func (a *DestinationAdapter) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	query, args, err := a.db.Select(destinationColumns...).
		From("destinations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build destination query", err)
	}

	destination, err := scanDestination(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("destination with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get destination", err)
	}

	return destination, nil
}

// List retrieves the full destination catalog, ordered by name
func (a *DestinationAdapter) List(ctx context.Context) ([]*entities.Destination, error) {
	query, args, err := a.db.Select(destinationColumns...).
		From("destinations").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build destination list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list destinations", err)
	}
	defer rows.Close()

	var destinations []*entities.Destination
	for rows.Next() {
		destination, err := scanDestination(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan destination", err)
		}
		destinations = append(destinations, destination)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read destinations", err)
	}

	return destinations, nil
}

func scanDestination(row rowScanner) (*entities.Destination, error) {
	destination := &entities.Destination{}
	var description, photoURL sql.NullString

	err := row.Scan(
		&destination.ID,
		&destination.Name,
		&destination.Country,
		&destination.Continent,
		&destination.Type,
		&destination.BestSeason,
		&destination.AvgRating,
		&destination.AnnualVisitors,
		&destination.UnescoSite,
		&photoURL,
		&destination.AvgCostUSD,
		&description,
	)
	if err != nil {
		return nil, err
	}

	destination.PhotoURL = photoURL.String
	destination.Description = description.String
	return destination, nil
}
