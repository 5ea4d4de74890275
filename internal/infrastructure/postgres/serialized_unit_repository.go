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

var _ repository.SerializedUnitRepository = (*SerializedUnitRepo)(nil)

const unitColumns = `id, product_id, serial_number, status, assigned_to, created_at, updated_at`

// SerializedUnitRepo implementação de SerializedUnitRepository sobre
// PostgreSQL (usável com pool ou tx).
type SerializedUnitRepo struct {
	q Querier
}

// NewSerializedUnitRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSerializedUnitRepository(q Querier) *SerializedUnitRepo {
	return &SerializedUnitRepo{q: q}
}

// Create persiste uma unidade nova.
func (r *SerializedUnitRepo) Create(unit *entity.SerializedUnit) error {
	query := `
		INSERT INTO serialized_units (id, product_id, serial_number, status, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.ProductID, unit.SerialNumber, unit.Status, unit.AssignedTo,
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert serialized unit: %w", err)
	}
	return nil
}

// GetByID obtém uma unidade por ID.
func (r *SerializedUnitRepo) GetByID(id string) (*entity.SerializedUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM serialized_units WHERE id = $1`
	return scanUnit(r.q.QueryRow(context.Background(), query, id), "get unit")
}

// GetForUpdate obtém a unidade bloqueando a fila, para a transição de status
// dentro da transação do ledger (fecha a corrida de dois checkouts da mesma
// unidade).
func (r *SerializedUnitRepo) GetForUpdate(id string) (*entity.SerializedUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM serialized_units WHERE id = $1 FOR UPDATE`
	return scanUnit(r.q.QueryRow(context.Background(), query, id), "get unit for update")
}

// UpdateStatus aplica a transição de status e portador. Só o ledger chama.
func (r *SerializedUnitRepo) UpdateStatus(id, status string, assignedTo *string) error {
	query := `
		UPDATE serialized_units
		SET status = $2, assigned_to = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, assignedTo)
	if err != nil {
		return fmt.Errorf("update unit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProduct lista unidades do produto, opcionalmente filtradas por status.
func (r *SerializedUnitRepo) ListByProduct(productID, status string) ([]*entity.SerializedUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM serialized_units WHERE product_id = $1`
	args := []any{productID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY serial_number`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.SerializedUnit
	for rows.Next() {
		var u entity.SerializedUnit
		if err := rows.Scan(&u.ID, &u.ProductID, &u.SerialNumber, &u.Status, &u.AssignedTo, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func scanUnit(row pgx.Row, op string) (*entity.SerializedUnit, error) {
	var u entity.SerializedUnit
	err := row.Scan(&u.ID, &u.ProductID, &u.SerialNumber, &u.Status, &u.AssignedTo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
