package handlers

import (
	"context"
	"net/http"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

// DestinationCatalog is the part of the destination service the handler uses
type DestinationCatalog interface {
	List(ctx context.Context) ([]*entities.Destination, error)
	GetByID(ctx context.Context, id string) (*entities.Destination, error)
}

// DestinationHandler handles destination catalog HTTP requests
type DestinationHandler struct {
	service DestinationCatalog
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(service DestinationCatalog) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// List handles GET /api/destinations
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.service.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"destinations": destinations,
		"count":        len(destinations),
	})
}

// Get handles GET /api/destinations/{id}
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "destination ID is required")
		return
	}

	destination, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, destination)
}
