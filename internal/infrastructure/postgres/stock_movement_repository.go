package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, seq, tenant_id, branch_id, product_id, movement_type, quantity, previous_stock, new_stock, serial_unit_id, reference_type, reference_id, created_by, created_at`

// StockMovementRepo implementação do ledger append-only sobre PostgreSQL
// (usável com pool ou tx). Não existem UPDATE/DELETE aqui de propósito:
// movimentos são imutáveis.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste um movimento e lê de volta o seq atribuído pelo banco.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, tenant_id, branch_id, product_id, movement_type, quantity, previous_stock, new_stock, serial_unit_id, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.TenantID, movement.BranchID, movement.ProductID,
		movement.Type, movement.Quantity, movement.PreviousStock, movement.NewStock,
		movement.SerialUnitID, movement.ReferenceType, movement.ReferenceID,
		movement.CreatedBy, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Seq, &m.TenantID, &m.BranchID, &m.ProductID, &m.Type,
		&m.Quantity, &m.PreviousStock, &m.NewStock, &m.SerialUnitID,
		&m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista movimentos de um produto em ordem de seq crescente:
// o replay dessa sequência reproduz a trajetória exata do saldo.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY seq ASC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByBranch lista movimentos de uma filial, mais recentes primeiro.
func (r *StockMovementRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE branch_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	return r.list(query, branchID, limit, offset)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.Seq, &m.TenantID, &m.BranchID, &m.ProductID, &m.Type,
			&m.Quantity, &m.PreviousStock, &m.NewStock, &m.SerialUnitID,
			&m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
