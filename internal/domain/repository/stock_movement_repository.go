package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// StockMovementRepository porta do ledger append-only: movimentos são criados
// uma vez e nunca alterados; não há Update nem Delete de propósito.
// ListByProduct devolve em ordem de seq crescente, a ordem de replay.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.StockMovement, error)
}
