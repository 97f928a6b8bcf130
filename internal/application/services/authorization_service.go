package services

import (
	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// Principal is the authenticated caller as established by the auth middleware.
type Principal struct {
	UserID string
	Role   entities.UserRole
}

// Operation names a protected action checked by the authorization gate.
type Operation string

const (
	OperationReservationCreate     Operation = "reservation:create"
	OperationReservationListMine   Operation = "reservation:list_mine"
	OperationReservationCancelMine Operation = "reservation:cancel_mine"
	OperationReservationListAll    Operation = "reservation:list_all"
	OperationReservationSetStatus  Operation = "reservation:set_status"
	OperationDashboardView         Operation = "dashboard:view"
	OperationActivityRecord        Operation = "activity:record"
	OperationUserList              Operation = "user:list"
	OperationUserManage            Operation = "user:manage"
)

// policy maps each operation to the roles allowed to perform it. An operation
// or role absent from the table is denied.
var policy = map[Operation]map[entities.UserRole]bool{
	OperationReservationCreate: {
		entities.UserRoleAdmin:  true,
		entities.UserRoleAgent:  true,
		entities.UserRoleClient: true,
		entities.UserRoleUser:   true,
	},
	OperationReservationListMine: {
		entities.UserRoleAdmin:  true,
		entities.UserRoleAgent:  true,
		entities.UserRoleClient: true,
		entities.UserRoleUser:   true,
	},
	OperationReservationCancelMine: {
		entities.UserRoleAdmin:  true,
		entities.UserRoleAgent:  true,
		entities.UserRoleClient: true,
		entities.UserRoleUser:   true,
	},
	OperationReservationListAll: {
		entities.UserRoleAdmin: true,
		entities.UserRoleAgent: true,
	},
	OperationReservationSetStatus: {
		entities.UserRoleAdmin: true,
		entities.UserRoleAgent: true,
	},
	OperationDashboardView: {
		entities.UserRoleAdmin: true,
		entities.UserRoleAgent: true,
	},
	OperationActivityRecord: {
		entities.UserRoleAdmin:  true,
		entities.UserRoleAgent:  true,
		entities.UserRoleClient: true,
		entities.UserRoleUser:   true,
	},
	OperationUserList: {
		entities.UserRoleAdmin: true,
		entities.UserRoleAgent: true,
	},
	OperationUserManage: {
		entities.UserRoleAdmin: true,
	},
}

// AuthorizationService decides whether a principal may perform an operation.
// All checks fail closed.
type AuthorizationService struct{}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// Authorize returns nil when the principal may perform the operation
func (s *AuthorizationService) Authorize(principal *Principal, op Operation) error {
	if principal == nil || principal.UserID == "" {
		return apperrors.NewUnauthorizedError("authentication required")
	}

	allowed, ok := policy[op]
	if !ok {
		return apperrors.NewForbiddenError("operation not permitted")
	}
	if !allowed[principal.Role] {
		return apperrors.NewForbiddenError("operation not permitted for role")
	}

	return nil
}

// AuthorizeOwner returns nil when the principal may perform the operation and
// owns the resource. Operators do not bypass ownership here; elevated actions
// go through their own operations.
func (s *AuthorizationService) AuthorizeOwner(principal *Principal, op Operation, ownerID string) error {
	if err := s.Authorize(principal, op); err != nil {
		return err
	}
	if principal.UserID != ownerID {
		return apperrors.NewForbiddenError("resource belongs to another user")
	}
	return nil
}
