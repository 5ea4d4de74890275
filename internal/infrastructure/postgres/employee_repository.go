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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, tenant_id, user_id, branch_id, name, created_at`

// EmployeeRepo implementação de EmployeeRepository sobre PostgreSQL
// (usável com pool ou tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository constrói o adaptador de funcionários. Passar pool ou tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste um funcionário novo.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, tenant_id, user_id, branch_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.TenantID, employee.UserID, employee.BranchID,
		employee.Name, employee.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtém um funcionário por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.q.QueryRow(context.Background(), query, id), "get employee")
}

// GetByUserID obtém o funcionário vinculado ao login no tenant; (nil, nil) se não há.
func (r *EmployeeRepo) GetByUserID(userID, tenantID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1 AND tenant_id = $2`
	return scanEmployee(r.q.QueryRow(context.Background(), query, userID, tenantID), "get employee by user")
}

func scanEmployee(row pgx.Row, op string) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.TenantID, &e.UserID, &e.BranchID, &e.Name, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}
