package services

import (
	"context"
	"fmt"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

const (
	actionUserRoleChanged   = "Rôle utilisateur modifié"
	actionUserStatusChanged = "Statut utilisateur modifié"
)

// UserService handles account administration. Accounts are never deleted;
// deactivation goes through the status field.
type UserService struct {
	repo  repositories.UserRepository
	authz *AuthorizationService
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, authz *AuthorizationService) *UserService {
	return &UserService{
		repo:  repo,
		authz: authz,
	}
}

// List returns users matching the filter for the operator view
func (s *UserService) List(ctx context.Context, principal *Principal, filter repositories.UserFilter) ([]*entities.User, int, error) {
	if err := s.authz.Authorize(principal, OperationUserList); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// Get returns a single user for the operator view
func (s *UserService) Get(ctx context.Context, principal *Principal, id string) (*entities.User, error) {
	if err := s.authz.Authorize(principal, OperationUserList); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// SetRole changes a user's role and returns the updated user. Admin only;
// the change and its ledger entry commit together.
func (s *UserService) SetRole(ctx context.Context, principal *Principal, id string, role entities.UserRole) (*entities.User, error) {
	if err := s.authz.Authorize(principal, OperationUserManage); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     actionUserRoleChanged,
		EntityType: "user",
		Details:    string(role),
	}

	return s.repo.UpdateRole(ctx, id, role, entry)
}

// SetStatus changes a user's account status and returns the updated user.
// Admin only.
func (s *UserService) SetStatus(ctx context.Context, principal *Principal, id string, status entities.UserStatus) (*entities.User, error) {
	if err := s.authz.Authorize(principal, OperationUserManage); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}

	entry := &entities.ActivityLog{
		UserID:     principal.UserID,
		Action:     actionUserStatusChanged,
		EntityType: "user",
		Details:    string(status),
	}

	return s.repo.UpdateStatus(ctx, id, status, entry)
}
