package ledger

import (
	"context"

	"github.com/campotec/campotec-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados àquela tx. É a fronteira de atomicidade do ledger:
// ou todos os itens de uma chamada entram, ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		unitRepo repository.SerializedUnitRepository,
	) error) error
}
