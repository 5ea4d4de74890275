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

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

const technicianColumns = `id, tenant_id, user_id, employee_id, branch_id, name, created_at`

// TechnicianRepo implementação de TechnicianRepository sobre PostgreSQL
// (usável com pool ou tx).
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository constrói o adaptador de técnicos. Passar pool ou tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

// Create persiste um técnico novo.
func (r *TechnicianRepo) Create(technician *entity.Technician) error {
	query := `
		INSERT INTO technicians (id, tenant_id, user_id, employee_id, branch_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		technician.ID, technician.TenantID, technician.UserID, technician.EmployeeID,
		technician.BranchID, technician.Name, technician.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtém um técnico por ID.
func (r *TechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = $1`
	return scanTechnician(r.q.QueryRow(context.Background(), query, id), "get technician")
}

// GetByUserID obtém o técnico vinculado ao login no tenant; (nil, nil) se não há.
func (r *TechnicianRepo) GetByUserID(userID, tenantID string) (*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE user_id = $1 AND tenant_id = $2`
	return scanTechnician(r.q.QueryRow(context.Background(), query, userID, tenantID), "get technician by user")
}

func scanTechnician(row pgx.Row, op string) (*entity.Technician, error) {
	var t entity.Technician
	err := row.Scan(&t.ID, &t.TenantID, &t.UserID, &t.EmployeeID, &t.BranchID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
