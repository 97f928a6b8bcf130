package handlers

import (
	"context"
	"net/http"

	"github.com/voyago/travel-agency-backend/internal/api/middleware"
	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
)

// DashboardReader is the part of the dashboard service the handler uses
type DashboardReader interface {
	KPIs(ctx context.Context, principal *services.Principal) (*services.KPISummary, error)
	MonthlyRevenue(ctx context.Context, principal *services.Principal) ([]services.MonthPoint, error)
	TopDestinations(ctx context.Context, principal *services.Principal) ([]services.TopDestination, error)
	RecentActivity(ctx context.Context, principal *services.Principal) ([]*repositories.ActivityLogDetail, error)
	RecentReservations(ctx context.Context, principal *services.Principal) ([]*repositories.ReservationDetail, error)
}

// ActivityRecorder accepts client-submitted ledger entries
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, principal *services.Principal, input services.RecordActivityInput) error
}

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	service  DashboardReader
	recorder ActivityRecorder
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardReader, recorder ActivityRecorder) *DashboardHandler {
	return &DashboardHandler{service: service, recorder: recorder}
}

type recordActivityRequest struct {
	Action     string `json:"action" validate:"required,max=120"`
	EntityType string `json:"entity_type" validate:"required,max=60"`
	EntityID   string `json:"entity_id" validate:"required"`
	Details    string `json:"details" validate:"max=500"`
}

// KPIs handles GET /api/admin/dashboard/kpis
func (h *DashboardHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	summary, err := h.service.KPIs(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// MonthlyRevenue handles GET /api/admin/dashboard/revenue
func (h *DashboardHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	series, err := h.service.MonthlyRevenue(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"months": series})
}

// TopDestinations handles GET /api/admin/dashboard/destinations
func (h *DashboardHandler) TopDestinations(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	destinations, err := h.service.TopDestinations(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"destinations": destinations})
}

// RecordActivity handles POST /api/logs
func (h *DashboardHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	var req recordActivityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	input := services.RecordActivityInput{
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Details:    req.Details,
	}
	if err := h.recorder.RecordActivity(r.Context(), principal, input); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "activity recorded"})
}

// RecentActivity handles GET /api/admin/dashboard/activity
func (h *DashboardHandler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	entries, err := h.service.RecentActivity(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"activity": entries})
}

// RecentReservations handles GET /api/admin/dashboard/reservations
func (h *DashboardHandler) RecentReservations(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	reservations, err := h.service.RecentReservations(r.Context(), principal)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"reservations": reservations})
}
