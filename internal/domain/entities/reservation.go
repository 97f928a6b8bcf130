package entities

import (
	"time"
)

// ReservationStatus represents the status of a reservation. The stored values
// are the French labels of the original data set.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "en attente"
	ReservationStatusConfirmed ReservationStatus = "confirmée"
	ReservationStatusCancelled ReservationStatus = "annulée"
	ReservationStatusPaid      ReservationStatus = "payée"
)

// IsValid reports whether the status is one of the known statuses.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusPaid
}

// allowedTransitions is the full transition table of the reservation
// lifecycle. Terminal statuses have no outgoing edges.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCancelled, ReservationStatusPaid},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation represents a booking of a destination for a date range.
// TotalAmount is a price snapshot taken at creation time and is never
// recomputed afterwards. Reservations are never deleted, only
// status-transitioned, so the ledger and the dashboard keep full history.
type Reservation struct {
	ID            string            `json:"id" db:"id"`
	UserID        string            `json:"user_id" db:"user_id"`
	DestinationID string            `json:"destination_id" db:"destination_id"`
	Status        ReservationStatus `json:"status" db:"status"`
	CheckIn       time.Time         `json:"check_in" db:"check_in"`
	CheckOut      time.Time         `json:"check_out" db:"check_out"`
	TotalAmount   float64           `json:"total_amount" db:"total_amount"`
	Notes         string            `json:"notes" db:"notes"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo reports whether the reservation may move to the given
// status.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	return CanTransition(r.Status, next)
}

// ActivityLog represents one append-only entry of the activity ledger.
// Entries are written in the same transaction as the mutation they describe
// and are never updated or deleted.
type ActivityLog struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Details    string    `json:"details" db:"details"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
