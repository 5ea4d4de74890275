package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação de UserRepository sobre PostgreSQL
// (usável com pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de usuários. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um usuário novo.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT id, email, password_hash, name, status, created_at, updated_at FROM users WHERE id = $1`
	return scanUser(r.q.QueryRow(context.Background(), query, id), "get user")
}

// FindByEmail obtém um usuário pelo e-mail.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT id, email, password_hash, name, status, created_at, updated_at FROM users WHERE email = $1`
	return scanUser(r.q.QueryRow(context.Background(), query, email), "find user by email")
}

// CreateRoleAssignment persiste o papel do usuário num tenant.
func (r *UserRepo) CreateRoleAssignment(ra *entity.RoleAssignment) error {
	query := `
		INSERT INTO role_assignments (user_id, tenant_id, role, branch_id, is_director, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ra.UserID, ra.TenantID, ra.Role, ra.BranchID, ra.IsDirector, ra.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role assignment: %w", err)
	}
	return nil
}

// GetRoleAssignment obtém o papel do usuário no tenant; (nil, nil) se não há.
func (r *UserRepo) GetRoleAssignment(userID, tenantID string) (*entity.RoleAssignment, error) {
	query := `
		SELECT user_id, tenant_id, role, branch_id, is_director, created_at
		FROM role_assignments WHERE user_id = $1 AND tenant_id = $2`
	var ra entity.RoleAssignment
	err := r.q.QueryRow(context.Background(), query, userID, tenantID).Scan(
		&ra.UserID, &ra.TenantID, &ra.Role, &ra.BranchID, &ra.IsDirector, &ra.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role assignment: %w", err)
	}
	return &ra, nil
}

func scanUser(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
