package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/voyago/travel-agency-backend/internal/api/middleware"
	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// ReservationBooker is the part of the reservation service the handler uses
type ReservationBooker interface {
	Quote(ctx context.Context, destinationID string, checkIn, checkOut time.Time) (entities.Quote, error)
	Create(ctx context.Context, principal *services.Principal, input services.CreateReservationInput) (*entities.Reservation, error)
	ListMine(ctx context.Context, principal *services.Principal) ([]*entities.Reservation, error)
	CancelMine(ctx context.Context, principal *services.Principal, id string) (*entities.Reservation, error)
	ListAll(ctx context.Context, principal *services.Principal, filter repositories.ReservationFilter) ([]*repositories.ReservationDetail, int, error)
	SetStatus(ctx context.Context, principal *services.Principal, id string, status entities.ReservationStatus) (*entities.Reservation, error)
}

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	service ReservationBooker
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(service ReservationBooker) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type createReservationRequest struct {
	DestinationID string `json:"destination_id" validate:"required"`
	CheckIn       string `json:"check_in" validate:"required"`
	CheckOut      string `json:"check_out" validate:"required"`
	Notes         string `json:"notes" validate:"max=500"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field + " must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// Quote handles GET /api/reservations/quote
func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	destinationID := query.Get("destination_id")
	if destinationID == "" {
		respondWithError(w, http.StatusBadRequest, "destination_id is required")
		return
	}

	checkIn, err := parseDate(query.Get("check_in"), "check_in")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	checkOut, err := parseDate(query.Get("check_out"), "check_out")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	quote, err := h.service.Quote(r.Context(), destinationID, checkIn, checkOut)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, quote)
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	checkIn, err := parseDate(req.CheckIn, "check_in")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut, "check_out")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	reservation, err := h.service.Create(r.Context(), principal, services.CreateReservationInput{
		DestinationID: req.DestinationID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// ListMine handles GET /api/reservations
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	reservations, err := h.service.ListMine(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// Cancel handles POST /api/reservations/{id}/cancel
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	reservation, err := h.service.CancelMine(r.Context(), principal, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

// ListAll handles GET /api/admin/reservations
func (h *ReservationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.ReservationFilter{
		Search:   query.Get("search"),
		Status:   entities.ReservationStatus(query.Get("status")),
		Page:     parsePositiveInt(query.Get("page"), 1),
		PageSize: parsePositiveInt(query.Get("page_size"), 20),
	}

	principal := middleware.PrincipalFromContext(r.Context())
	reservations, total, err := h.service.ListAll(r.Context(), principal, filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
		"total":        total,
		"page":         filter.Page,
		"page_size":    filter.PageSize,
	})
}

// SetStatus handles PATCH /api/admin/reservations/{id}/status
func (h *ReservationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	var req setStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	reservation, err := h.service.SetStatus(r.Context(), principal, id, entities.ReservationStatus(req.Status))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
