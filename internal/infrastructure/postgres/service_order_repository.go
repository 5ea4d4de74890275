package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const orderColumns = `id, tenant_id, branch_id, number, customer_name, status, technician_id, parts_total, created_at, updated_at`

// ServiceOrderRepo implementação de ServiceOrderRepository sobre PostgreSQL
// (usável com pool ou tx).
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository constrói o adaptador de ordens de serviço. Passar pool ou tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

// Create persiste uma ordem de serviço nova.
func (r *ServiceOrderRepo) Create(order *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (id, tenant_id, branch_id, number, customer_name, status, technician_id, parts_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.TenantID, order.BranchID, order.Number, order.CustomerName,
		order.Status, order.TechnicianID, order.PartsTotal, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// GetByID obtém uma ordem por ID.
func (r *ServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders WHERE id = $1`
	var o entity.ServiceOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.TenantID, &o.BranchID, &o.Number, &o.CustomerName,
		&o.Status, &o.TechnicianID, &o.PartsTotal, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return &o, nil
}

// AddToPartsTotal soma o valor das peças consumidas ao total da ordem.
// A soma acontece no banco para não perder concorrência entre consumos.
func (r *ServiceOrderRepo) AddToPartsTotal(id string, amount decimal.Decimal) error {
	query := `
		UPDATE service_orders
		SET parts_total = parts_total + $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("add to parts total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus aplica o novo status da ordem.
func (r *ServiceOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE service_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update service order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListScoped lista ordens do tenant sob a decisão de escopo, mais recentes
// primeiro.
func (r *ServiceOrderRepo) ListScoped(tenantID string, d scope.Decision, limit, offset int) ([]*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders WHERE tenant_id = $1`
	args := []any{tenantID}
	if d.ShouldFilter {
		query += ` AND branch_id = $2`
		args = append(args, branchFilterArg(d))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		var o entity.ServiceOrder
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.BranchID, &o.Number, &o.CustomerName,
			&o.Status, &o.TechnicianID, &o.PartsTotal, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
