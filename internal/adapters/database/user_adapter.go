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

var userColumns = []interface{}{
	"id", "email", "name", "role", "status", "phone", "last_login", "created_at",
}

// UserAdapter implements the UserRepository interface using PostgreSQL
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// List retrieves users matching the filter, newest first
func (a *UserAdapter) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, int, error) {
	base := a.db.From("users")

	if filter.Role != "" {
		base = base.Where(goqu.Ex{"role": filter.Role})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("email").ILike(pattern),
		))
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT("id")).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build user count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count users", err)
	}

	ds := base.Select(userColumns...).Order(goqu.I("created_at").Desc())
	if filter.PageSize > 0 {
		ds = ds.Limit(uint(filter.PageSize))
		if filter.Page > 1 {
			ds = ds.Offset(uint((filter.Page - 1) * filter.PageSize))
		}
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build user list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to read users", err)
	}

	return users, total, nil
}

// UpdateRole changes a user's role and appends the ledger entry in one
// transaction, returning the updated user
func (a *UserAdapter) UpdateRole(ctx context.Context, id string, role entities.UserRole, entry *entities.ActivityLog) (*entities.User, error) {
	return a.updateField(ctx, id, goqu.Record{"role": role}, entry)
}

// UpdateStatus changes a user's account status and appends the ledger entry
// in one transaction, returning the updated user
func (a *UserAdapter) UpdateStatus(ctx context.Context, id string, status entities.UserStatus, entry *entities.ActivityLog) (*entities.User, error) {
	return a.updateField(ctx, id, goqu.Record{"status": status}, entry)
}

func (a *UserAdapter) updateField(ctx context.Context, id string, record goqu.Record, entry *entities.ActivityLog) (*entities.User, error) {
	entry.EntityID = id

	query, args, err := a.db.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user update", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		tx.Rollback()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}

	if err := insertActivityLogTx(ctx, tx, a.db, entry); err != nil {
		tx.Rollback()
		return nil, err
	}

	selectQuery, selectArgs, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user, err := scanUser(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to read updated user", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewInternalError("failed to commit user update", err)
	}

	return user, nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var phone sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Status,
		&phone,
		&lastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Phone = phone.String
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}
