package repository

import (
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// ProductRepository porta de persistência de produtos.
//
// GetForUpdate bloqueia a linha (SELECT FOR UPDATE) para a sequência
// ler-verificar-gravar do ledger. UpdateStockGuarded é a escrita condicional:
// só aplica se current_stock ainda for o valor lido, devolvendo
// domain.ErrConcurrencyConflict caso contrário.
//
// As consultas escopadas (ListScoped, CountScoped, ListLowStock) excluem
// sempre produtos com branch_id nulo quando o filtro está ativo (fail-closed).
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStockGuarded(id string, previousStock, newStock int64) error
	ListScoped(tenantID string, d scope.Decision, limit, offset int) ([]*entity.Product, error)
	CountScoped(tenantID string, d scope.Decision) (int, error)
	ListLowStock(tenantID string, d scope.Decision) ([]*entity.Product, error)
}
