package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/application/ledger"
	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// ServiceOrderUseCase ordens de serviço: cadastro, consulta e consumo de
// peças. O consumo é uma saída do ledger com referência à OS; esta camada
// nunca escreve saldo diretamente.
type ServiceOrderUseCase struct {
	orderRepo   repository.ServiceOrderRepository
	productRepo repository.ProductRepository
	ledgerUC    *ledger.UseCase
}

// NewServiceOrderUseCase constrói o caso de uso de OS.
func NewServiceOrderUseCase(
	orderRepo repository.ServiceOrderRepository,
	productRepo repository.ProductRepository,
	ledgerUC *ledger.UseCase,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{orderRepo: orderRepo, productRepo: productRepo, ledgerUC: ledgerUC}
}

// Create abre uma OS na filial informada, respeitando o escopo do chamador.
func (uc *ServiceOrderUseCase) Create(ctx context.Context, tenantID string, sc scope.Decision, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if in.BranchID == "" || in.Number == "" || in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !sc.AllowsBranch(in.BranchID) {
		return nil, domain.ErrScopeDenied
	}
	now := time.Now()
	order := &entity.ServiceOrder{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		BranchID:     in.BranchID,
		Number:       in.Number,
		CustomerName: in.CustomerName,
		Status:       entity.OrderStatusAberta,
		TechnicianID: in.TechnicianID,
		PartsTotal:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// GetByID devolve a OS se o escopo alcança a filial dela.
func (uc *ServiceOrderUseCase) GetByID(ctx context.Context, tenantID string, sc scope.Decision, id string) (*dto.ServiceOrderResponse, error) {
	order, err := uc.visibleOrder(tenantID, sc, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// List lista as OS do tenant dentro do escopo.
func (uc *ServiceOrderUseCase) List(ctx context.Context, tenantID string, sc scope.Decision, page dto.PageRequest) ([]dto.ServiceOrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListScoped(tenantID, sc, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// ConsumeParts baixa peças para a OS: registra uma saída no ledger com
// referência service_order e acumula o valor das peças em PartsTotal.
// Unidades serializadas saem atribuídas ao técnico da OS.
func (uc *ServiceOrderUseCase) ConsumeParts(ctx context.Context, tenantID, actorID string, sc scope.Decision, orderID string, in dto.ConsumePartsRequest) ([]dto.StockMovementResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.visibleOrder(tenantID, sc, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusConcluida || order.Status == entity.OrderStatusCancelada {
		return nil, domain.ErrInvalidInput
	}

	items := make([]ledger.MovementItem, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.TenantID != tenantID {
			return nil, domain.ErrNotFound
		}
		total = total.Add(product.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
		items = append(items, ledger.MovementItem{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			SerializedUnitID: item.SerializedUnitID,
			AssignedTo:       order.TechnicianID,
		})
	}

	movements, err := uc.ledgerUC.RecordMovement(ctx, sc, ledger.MovementInput{
		TenantID:  tenantID,
		BranchID:  order.BranchID,
		Type:      entity.MovementSaida,
		ActorID:   actorID,
		Reference: &ledger.MovementReference{Type: entity.ReferenceServiceOrder, ID: order.ID},
		Items:     items,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepo.AddToPartsTotal(order.ID, total); err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusAberta {
		if err := uc.orderRepo.UpdateStatus(order.ID, entity.OrderStatusEmAndamento); err != nil {
			return nil, err
		}
	}

	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

func (uc *ServiceOrderUseCase) visibleOrder(tenantID string, sc scope.Decision, id string) (*entity.ServiceOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if !sc.AllowsBranch(order.BranchID) {
		return nil, domain.ErrScopeDenied
	}
	return order, nil
}

func toOrderResponse(o *entity.ServiceOrder) dto.ServiceOrderResponse {
	return dto.ServiceOrderResponse{
		ID:           o.ID,
		BranchID:     o.BranchID,
		Number:       o.Number,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		TechnicianID: o.TechnicianID,
		PartsTotal:   o.PartsTotal,
		CreatedAt:    o.CreatedAt,
	}
}
