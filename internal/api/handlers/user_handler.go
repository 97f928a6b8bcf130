package handlers

import (
	"context"
	"net/http"

	"github.com/voyago/travel-agency-backend/internal/api/middleware"
	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
)

// UserAdministrator is the part of the user service the handler uses
type UserAdministrator interface {
	List(ctx context.Context, principal *services.Principal, filter repositories.UserFilter) ([]*entities.User, int, error)
	Get(ctx context.Context, principal *services.Principal, id string) (*entities.User, error)
	SetRole(ctx context.Context, principal *services.Principal, id string, role entities.UserRole) (*entities.User, error)
	SetStatus(ctx context.Context, principal *services.Principal, id string, status entities.UserStatus) (*entities.User, error)
}

// UserHandler handles account administration HTTP requests
type UserHandler struct {
	service UserAdministrator
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserAdministrator) *UserHandler {
	return &UserHandler{service: service}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type setUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// List handles GET /api/admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.UserFilter{
		Search:   query.Get("search"),
		Role:     entities.UserRole(query.Get("role")),
		Page:     parsePositiveInt(query.Get("page"), 1),
		PageSize: parsePositiveInt(query.Get("page_size"), 20),
	}

	principal := middleware.PrincipalFromContext(r.Context())
	users, total, err := h.service.List(r.Context(), principal, filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users":     users,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// Get handles GET /api/admin/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	user, err := h.service.Get(r.Context(), principal, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// SetRole handles PATCH /api/admin/users/{id}/role
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var req setRoleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	user, err := h.service.SetRole(r.Context(), principal, id, entities.UserRole(req.Role))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// SetStatus handles PATCH /api/admin/users/{id}/status
func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var req setUserStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	user, err := h.service.SetStatus(r.Context(), principal, id, entities.UserStatus(req.Status))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
