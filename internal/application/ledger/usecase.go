package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// UseCase registra movimentos de estoque de forma transacional, com bloqueio
// de fila (SELECT FOR UPDATE) por produto e escrita condicional do saldo.
// Toda operação é validada contra a scope.Decision do chamador antes de
// qualquer escrita.
type UseCase struct {
	txRunner   TxRunner
	branchRepo repository.BranchRepository
}

// NewUseCase constrói o caso de uso do ledger.
func NewUseCase(txRunner TxRunner, branchRepo repository.BranchRepository) *UseCase {
	return &UseCase{txRunner: txRunner, branchRepo: branchRepo}
}

// MovementItem é um item da requisição de movimento.
// Quantity (> 0) vale para entrada/saida/devolucao. Delta é o valor assinado
// informado pelo chamador para ajuste/transferencia; a quantidade gravada é
// |Delta| e o saldo resultante segue a mesma regra de não-negatividade.
// AssignedTo nomeia o técnico portador numa saída serializada.
type MovementItem struct {
	ProductID        string
	Quantity         int64
	Delta            int64
	SerializedUnitID *string
	AssignedTo       *string
}

// MovementReference é a referência polimórfica de um movimento
// (ordem de serviço ou técnico).
type MovementReference struct {
	Type string // entity.ReferenceServiceOrder | entity.ReferenceTechnician
	ID   string
}

// MovementInput entrada de RecordMovement.
type MovementInput struct {
	TenantID  string
	BranchID  string
	Type      string
	ActorID   string
	Reference *MovementReference
	Items     []MovementItem
}

// RecordMovement valida, abre uma transação e processa os itens na ordem
// recebida. Por item: carrega o produto sob lock, calcula o novo saldo,
// grava o movimento imutável com snapshot previous/new, aplica o saldo com
// escrita condicional e executa a transição da unidade serializada quando
// houver. Devolve os movimentos criados na ordem dos itens.
func (uc *UseCase) RecordMovement(ctx context.Context, sc scope.Decision, input MovementInput) ([]*entity.StockMovement, error) {
	if err := uc.validate(sc, input); err != nil {
		return nil, err
	}

	branch, err := uc.branchRepo.GetByID(input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.TenantID != input.TenantID {
		return nil, domain.ErrNotFound
	}

	var created []*entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		unitRepo repository.SerializedUnitRepository,
	) error {
		for i := range input.Items {
			mov, err := uc.applyItem(movRepo, productRepo, unitRepo, sc, input, input.Items[i])
			if err != nil {
				return err
			}
			created = append(created, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) validate(sc scope.Decision, input MovementInput) error {
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	if len(input.Items) == 0 || input.TenantID == "" || input.BranchID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if input.Reference != nil &&
		input.Reference.Type != entity.ReferenceServiceOrder &&
		input.Reference.Type != entity.ReferenceTechnician {
		return domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return domain.ErrInvalidInput
		}
		switch input.Type {
		case entity.MovementAjuste, entity.MovementTransferencia:
			if item.Delta == 0 {
				return domain.ErrInvalidInput
			}
		default:
			if item.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
		}
	}
	if sc.IsDenyAll() || !sc.AllowsBranch(input.BranchID) {
		return domain.ErrScopeDenied
	}
	return nil
}

// applyItem executa a sequência ler-verificar-gravar de um item. O produto
// fica bloqueado até o commit da transação, então duas saídas concorrentes
// sobre o mesmo produto nunca leem o mesmo previous_stock.
func (uc *UseCase) applyItem(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.SerializedUnitRepository,
	sc scope.Decision,
	input MovementInput,
	item MovementItem,
) (*entity.StockMovement, error) {
	product, err := productRepo.GetForUpdate(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != input.TenantID {
		return nil, domain.ErrForbidden
	}
	if product.BranchID == nil {
		// Produto sem filial é invisível para escopo filtrado (fail-closed);
		// só uma visão irrestrita pode movimentá-lo.
		if sc.ShouldFilter {
			return nil, domain.ErrScopeDenied
		}
	} else if *product.BranchID != input.BranchID {
		return nil, domain.ErrInvalidInput
	}

	previous := product.CurrentStock
	quantity, next, err := computeNewStock(input.Type, item, previous)
	if err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TenantID:      input.TenantID,
		BranchID:      input.BranchID,
		ProductID:     product.ID,
		Type:          input.Type,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		SerialUnitID:  item.SerializedUnitID,
		CreatedBy:     input.ActorID,
		CreatedAt:     time.Now(),
	}
	if input.Reference != nil {
		mov.ReferenceType = &input.Reference.Type
		mov.ReferenceID = &input.Reference.ID
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStockGuarded(product.ID, previous, next); err != nil {
		return nil, err
	}

	if item.SerializedUnitID != nil {
		if err := uc.applyUnitTransition(unitRepo, product, input, item); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

// computeNewStock aplica o delta implicado pelo tipo e rejeita saldo negativo
// antes de qualquer escrita.
func computeNewStock(movementType string, item MovementItem, previous int64) (quantity, next int64, err error) {
	switch movementType {
	case entity.MovementEntrada, entity.MovementDevolucao:
		return item.Quantity, previous + item.Quantity, nil
	case entity.MovementSaida:
		next = previous - item.Quantity
		if next < 0 {
			return 0, 0, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: previous,
			}
		}
		return item.Quantity, next, nil
	case entity.MovementAjuste, entity.MovementTransferencia:
		next = previous + item.Delta
		if next < 0 {
			return 0, 0, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: -item.Delta,
				Available: previous,
			}
		}
		quantity = item.Delta
		if quantity < 0 {
			quantity = -quantity
		}
		return quantity, next, nil
	}
	return 0, 0, domain.ErrInvalidInput
}

// applyUnitTransition executa a máquina de estados da unidade serializada:
// disponivel --saida--> em_uso --devolucao--> disponivel. Os demais tipos não
// tocam a unidade. Uma saída exige a unidade disponivel (a seleção de unidade
// já em uso é rejeitada aqui, não no cliente) e um portador resolvível.
func (uc *UseCase) applyUnitTransition(
	unitRepo repository.SerializedUnitRepository,
	product *entity.Product,
	input MovementInput,
	item MovementItem,
) error {
	if !product.IsSerialized {
		return domain.ErrInvalidInput
	}
	unit, err := unitRepo.GetForUpdate(*item.SerializedUnitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	if unit.ProductID != product.ID {
		return domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementSaida:
		if unit.Status != entity.UnitStatusDisponivel {
			return domain.ErrUnitUnavailable
		}
		assignee := item.AssignedTo
		if assignee == nil && input.Reference != nil && input.Reference.Type == entity.ReferenceTechnician {
			assignee = &input.Reference.ID
		}
		if assignee == nil {
			return domain.ErrInvalidInput
		}
		return unitRepo.UpdateStatus(unit.ID, entity.UnitStatusEmUso, assignee)
	case entity.MovementDevolucao:
		return unitRepo.UpdateStatus(unit.ID, entity.UnitStatusDisponivel, nil)
	}
	return nil
}
