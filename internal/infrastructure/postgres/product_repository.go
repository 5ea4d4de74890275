package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, branch_id, sku, name, description, current_stock, min_stock, is_serialized, unit_price, created_at, updated_at`

// ProductRepo implementação de ProductRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um produto novo. O saldo inicia em zero; entradas vêm do ledger.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, branch_id, sku, name, description, current_stock, min_stock, is_serialized, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.TenantID, product.BranchID, product.SKU, product.Name,
		product.Description, product.CurrentStock, product.MinStock, product.IsSerialized,
		product.UnitPrice, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update atualiza os dados cadastrais. current_stock fica fora de propósito:
// o saldo só muda via UpdateStockGuarded.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET branch_id = $2, sku = $3, name = $4, description = $5, min_stock = $6, unit_price = $7, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BranchID, product.SKU, product.Name,
		product.Description, product.MinStock, product.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetForUpdate obtém o produto e bloqueia a fila (SELECT FOR UPDATE) para a
// sequência ler-verificar-gravar do ledger.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// UpdateStockGuarded aplica o novo saldo apenas se current_stock ainda for o
// valor lido. Zero linhas afetadas significa que outra escrita passou na
// frente: ErrConcurrencyConflict, e o chamador relê e repete.
func (r *ProductRepo) UpdateStockGuarded(id string, previousStock, newStock int64) error {
	query := `
		UPDATE products
		SET current_stock = $3, updated_at = now()
		WHERE id = $1 AND current_stock = $2`
	tag, err := r.q.Exec(context.Background(), query, id, previousStock, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// ListScoped lista produtos do tenant sob a decisão de escopo. Com filtro
// ativo só entram produtos da filial decidida; branch_id nulo nunca aparece
// em consulta escopada (fail-closed).
func (r *ProductRepo) ListScoped(tenantID string, d scope.Decision, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1`
	args := []any{tenantID}
	if d.ShouldFilter {
		query += ` AND branch_id = $2`
		args = append(args, branchFilterArg(d))
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// CountScoped conta produtos do tenant sob a mesma regra de ListScoped.
func (r *ProductRepo) CountScoped(tenantID string, d scope.Decision) (int, error) {
	query := `SELECT count(*) FROM products WHERE tenant_id = $1`
	args := []any{tenantID}
	if d.ShouldFilter {
		query += ` AND branch_id = $2`
		args = append(args, branchFilterArg(d))
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ListLowStock lista produtos com saldo no ponto de reposição ou abaixo.
func (r *ProductRepo) ListLowStock(tenantID string, d scope.Decision) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND current_stock <= min_stock`
	args := []any{tenantID}
	if d.ShouldFilter {
		query += ` AND branch_id = $2`
		args = append(args, branchFilterArg(d))
	}
	query += ` ORDER BY current_stock - min_stock`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// branchFilterArg devolve a filial do filtro; uma Decision filtrada sem
// filial é estado inválido e cai na sentinela (não casa com nada).
func branchFilterArg(d scope.Decision) string {
	if d.BranchID == nil {
		return scope.DenyAllBranchID
	}
	return *d.BranchID
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.BranchID, &p.SKU, &p.Name, &p.Description,
		&p.CurrentStock, &p.MinStock, &p.IsSerialized, &p.UnitPrice,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.BranchID, &p.SKU, &p.Name, &p.Description,
			&p.CurrentStock, &p.MinStock, &p.IsSerialized, &p.UnitPrice,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
