// Wellness Escape | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wellnessescape/backend/internal/core"
)

// UserWithRole is the joined view used wherever the caller needs the role
// resolved alongside the user row.
type UserWithRole struct {
	User
	Role string `db:"role"`
}

type Repository interface {
	// Create inserts the user and its role row atomically. Returns
	// core.ErrDuplicateKey when the email is taken.
	Create(ctx context.Context, u *User, role string) error
	GetByID(ctx context.Context, id string) (*UserWithRole, error)
	GetByEmail(ctx context.Context, email string) (*UserWithRole, error)
	// GrantAccess sets the access flag. Granting twice is a no-op.
	GrantAccess(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]UserWithRole, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User, role string) error {
	// Single statement keeps user + role insertion atomic without an
	// explicit transaction.
	query := `
		WITH new_user AS (
			INSERT INTO users (id, email, password_hash, name, has_access)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		), new_role AS (
			INSERT INTO user_roles (user_id, role)
			SELECT id, $6::app_role FROM new_user
		)
		SELECT created_at, updated_at FROM new_user`

	row := r.db.QueryRowxContext(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.HasAccess,
		role,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*UserWithRole, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.has_access,
		       u.created_at, u.updated_at, ur.role
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.id = $1`

	var u UserWithRole
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*UserWithRole, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.has_access,
		       u.created_at, u.updated_at, ur.role
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.email = $1`

	var u UserWithRole
	err := r.db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

func (r *repository) GrantAccess(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET has_access = TRUE, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("grant access: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("grant access: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("grant access: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]UserWithRole, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.email ILIKE $%d OR u.name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users u WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.password_hash, u.name, u.has_access,
		       u.created_at, u.updated_at, ur.role
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE %s
		ORDER BY u.created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []UserWithRole
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
