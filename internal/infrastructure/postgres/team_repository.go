package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

const teamColumns = `id, tenant_id, branch_id, name, leader_technician_id, leader_employee_id, created_at`

// TeamRepo implementação de TeamRepository sobre PostgreSQL
// (usável com pool ou tx).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository constrói o adaptador de equipes. Passar pool ou tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste uma equipe nova.
func (r *TeamRepo) Create(team *entity.Team) error {
	query := `
		INSERT INTO teams (id, tenant_id, branch_id, name, leader_technician_id, leader_employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		team.ID, team.TenantID, team.BranchID, team.Name,
		team.LeaderTechnicianID, team.LeaderEmployeeID, team.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// ListLedByTechnician lista as equipes lideradas pelo técnico.
func (r *TeamRepo) ListLedByTechnician(technicianID string) ([]*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE leader_technician_id = $1 ORDER BY name`
	return r.list(query, technicianID)
}

// ListLedByEmployee lista as equipes lideradas pelo funcionário.
func (r *TeamRepo) ListLedByEmployee(employeeID string) ([]*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE leader_employee_id = $1 ORDER BY name`
	return r.list(query, employeeID)
}

func (r *TeamRepo) list(query string, args ...any) ([]*entity.Team, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func scanTeam(rows pgx.Rows, t *entity.Team) error {
	if err := rows.Scan(&t.ID, &t.TenantID, &t.BranchID, &t.Name, &t.LeaderTechnicianID, &t.LeaderEmployeeID, &t.CreatedAt); err != nil {
		return fmt.Errorf("scan team: %w", err)
	}
	return nil
}
