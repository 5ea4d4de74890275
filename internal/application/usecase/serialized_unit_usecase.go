package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// SerializedUnitUseCase cadastro e consulta de unidades serializadas.
// O status das unidades pertence ao ledger; aqui só se cria e se lista.
type SerializedUnitUseCase struct {
	unitRepo    repository.SerializedUnitRepository
	productRepo repository.ProductRepository
}

// NewSerializedUnitUseCase constrói o caso de uso de unidades.
func NewSerializedUnitUseCase(unitRepo repository.SerializedUnitRepository, productRepo repository.ProductRepository) *SerializedUnitUseCase {
	return &SerializedUnitUseCase{unitRepo: unitRepo, productRepo: productRepo}
}

// Create registra uma unidade física de um produto serializado, já disponivel.
// A entrada do saldo correspondente continua sendo um movimento do ledger.
func (uc *SerializedUnitUseCase) Create(ctx context.Context, tenantID string, sc scope.Decision, productID string, in dto.CreateSerializedUnitRequest) (*dto.SerializedUnitResponse, error) {
	if in.SerialNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if !product.IsSerialized {
		return nil, domain.ErrInvalidInput
	}
	if sc.ShouldFilter && (product.BranchID == nil || !sc.AllowsBranch(*product.BranchID)) {
		return nil, domain.ErrScopeDenied
	}
	unit := &entity.SerializedUnit{
		ID:           uuid.New().String(),
		ProductID:    productID,
		SerialNumber: in.SerialNumber,
		Status:       entity.UnitStatusDisponivel,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	resp := toUnitResponse(unit)
	return &resp, nil
}

// ListByProduct lista as unidades do produto, opcionalmente por status
// (ex.: disponivel, para a seleção de saída).
func (uc *SerializedUnitUseCase) ListByProduct(ctx context.Context, tenantID string, sc scope.Decision, productID, status string) ([]dto.SerializedUnitResponse, error) {
	if status != "" && status != entity.UnitStatusDisponivel && status != entity.UnitStatusEmUso {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if sc.ShouldFilter && (product.BranchID == nil || !sc.AllowsBranch(*product.BranchID)) {
		return nil, domain.ErrScopeDenied
	}
	units, err := uc.unitRepo.ListByProduct(productID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerializedUnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toUnitResponse(u))
	}
	return out, nil
}

func toUnitResponse(u *entity.SerializedUnit) dto.SerializedUnitResponse {
	return dto.SerializedUnitResponse{
		ID:           u.ID,
		ProductID:    u.ProductID,
		SerialNumber: u.SerialNumber,
		Status:       u.Status,
		AssignedTo:   u.AssignedTo,
		CreatedAt:    u.CreatedAt,
	}
}
