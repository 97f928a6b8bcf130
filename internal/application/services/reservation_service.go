package services

import (
	"context"
	"fmt"
	"time"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/observability"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// Ledger action labels. The stored values are the French labels of the
// original data set, matching the status values.
const (
	actionReservationCreated = "Nouvelle réservation créée"
	actionReservationUpdated = "Réservation mise à jour"
)

var statusActions = map[entities.ReservationStatus]string{
	entities.ReservationStatusConfirmed: "Réservation confirmée",
	entities.ReservationStatusCancelled: "Réservation annulée",
	entities.ReservationStatusPaid:      "Réservation payée",
}

func statusAction(status entities.ReservationStatus) string {
	if action, ok := statusActions[status]; ok {
		return action
	}
	return actionReservationUpdated
}

// CreateReservationInput carries the caller-supplied fields of a new
// reservation. The price is always computed server-side from the catalog.
type CreateReservationInput struct {
	DestinationID string
	CheckIn       time.Time
	CheckOut      time.Time
	Notes         string
}

// ReservationService handles the reservation lifecycle
type ReservationService struct {
	repo         repositories.ReservationRepository
	destinations repositories.DestinationRepository
	authz        *AuthorizationService
	metrics      *observability.Metrics
}

// NewReservationService creates a new reservation service
func NewReservationService(
	repo repositories.ReservationRepository,
	destinations repositories.DestinationRepository,
	authz *AuthorizationService,
	metrics *observability.Metrics,
) *ReservationService {
	return &ReservationService{
		repo:         repo,
		destinations: destinations,
		authz:        authz,
		metrics:      metrics,
	}
}

// Quote prices a stay without creating anything
func (s *ReservationService) Quote(ctx context.Context, destinationID string, checkIn, checkOut time.Time) (entities.Quote, error) {
	destination, err := s.destinations.GetByID(ctx, destinationID)
	if err != nil {
		return entities.Quote{}, err
	}
	return entities.ComputePrice(destination.AvgCostUSD, checkIn, checkOut)
}

// Create books a destination for the principal. The reservation starts
// pending, the amount is a price snapshot taken now, and the ledger entry
// commits with the reservation row.
func (s *ReservationService) Create(ctx context.Context, principal *Principal, input CreateReservationInput) (*entities.Reservation, error) {
	if err := s.authz.Authorize(principal, OperationReservationCreate); err != nil {
		return nil, err
	}

	destination, err := s.destinations.GetByID(ctx, input.DestinationID)
	if err != nil {
		return nil, err
	}

	quote, err := entities.ComputePrice(destination.AvgCostUSD, input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	reservation := &entities.Reservation{
		UserID:        principal.UserID,
		DestinationID: destination.ID,
		Status:        entities.ReservationStatusPending,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		TotalAmount:   quote.TotalAmount,
		Notes:         input.Notes,
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     actionReservationCreated,
		EntityType: "reservation",
		Details:    fmt.Sprintf("%s, %d nuit(s)", destination.Name, quote.Nights),
	}

	if err := s.repo.Create(ctx, reservation, entry); err != nil {
		return nil, err
	}

	observability.RecordReservationCreated(ctx, s.metrics)
	observability.LoggerFromContext(ctx).Info().
		Str("reservation_id", reservation.ID).
		Str("destination_id", destination.ID).
		Float64("total_amount", reservation.TotalAmount).
		Msg("reservation created")

	return reservation, nil
}

// ListMine returns the principal's own reservations, newest first
func (s *ReservationService) ListMine(ctx context.Context, principal *Principal) ([]*entities.Reservation, error) {
	if err := s.authz.Authorize(principal, OperationReservationListMine); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, principal.UserID)
}

// CancelMine cancels one of the principal's own reservations. Finalized
// reservations stay as they are.
func (s *ReservationService) CancelMine(ctx context.Context, principal *Principal, id string) (*entities.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.AuthorizeOwner(principal, OperationReservationCancelMine, reservation.UserID); err != nil {
		return nil, err
	}

	if reservation.Status.IsTerminal() {
		return nil, apperrors.NewInvalidTransitionError("cannot cancel a finalized reservation")
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     statusAction(entities.ReservationStatusCancelled),
		EntityType: "reservation",
	}

	updated, err := s.repo.UpdateStatus(ctx, id, reservation.Status, entities.ReservationStatusCancelled, entry)
	if err != nil {
		return nil, err
	}

	observability.RecordReservationCancelled(ctx, s.metrics)
	return updated, nil
}

// ListAll returns reservations across all users for the operator view
func (s *ReservationService) ListAll(ctx context.Context, principal *Principal, filter repositories.ReservationFilter) ([]*repositories.ReservationDetail, int, error) {
	if err := s.authz.Authorize(principal, OperationReservationListAll); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// SetStatus moves a reservation to a new status on behalf of an operator.
// The transition table is checked before touching storage, so an illegal move
// never reaches the database.
func (s *ReservationService) SetStatus(ctx context.Context, principal *Principal, id string, status entities.ReservationStatus) (*entities.Reservation, error) {
	if err := s.authz.Authorize(principal, OperationReservationSetStatus); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown reservation status %q", status))
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !reservation.CanTransitionTo(status) {
		return nil, apperrors.NewInvalidTransitionError(
			fmt.Sprintf("cannot move reservation from %q to %q", reservation.Status, status))
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     statusAction(status),
		EntityType: "reservation",
	}

	updated, err := s.repo.UpdateStatus(ctx, id, reservation.Status, status, entry)
	if err != nil {
		return nil, err
	}

	if status == entities.ReservationStatusCancelled {
		observability.RecordReservationCancelled(ctx, s.metrics)
	}

	return updated, nil
}
