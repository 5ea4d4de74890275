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

// ProductUseCase CRUD de produtos. Toda leitura passa pela scope.Decision do
// chamador; produtos sem filial nunca aparecem em consulta escopada.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	branchRepo   repository.BranchRepository
}

// NewProductUseCase constrói o caso de uso de produtos.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	branchRepo repository.BranchRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo, branchRepo: branchRepo}
}

// Create cadastra um produto com estoque zero. O saldo só muda via ledger.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, sc scope.Decision, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BranchID != nil {
		if !sc.AllowsBranch(*in.BranchID) {
			return nil, domain.ErrScopeDenied
		}
		branch, err := uc.branchRepo.GetByID(*in.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil || branch.TenantID != tenantID {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		BranchID:     in.BranchID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		MinStock:     in.MinStock,
		IsSerialized: in.IsSerialized,
		UnitPrice:    in.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID devolve o produto se o escopo do chamador alcança a filial dele.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID string, sc scope.Decision, id string) (*dto.ProductResponse, error) {
	product, err := uc.visibleProduct(tenantID, sc, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List lista produtos do tenant dentro do escopo, paginado.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, sc scope.Decision, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.ListScoped(tenantID, sc, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.CountScoped(tenantID, sc)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Total: total, Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock lista produtos com current_stock <= min_stock dentro do escopo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, tenantID string, sc scope.Decision) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(tenantID, sc)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListMovements devolve o histórico do produto em ordem de replay (seq).
func (uc *ProductUseCase) ListMovements(ctx context.Context, tenantID string, sc scope.Decision, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if _, err := uc.visibleProduct(tenantID, sc, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// visibleProduct carrega o produto e aplica o fail-closed de escopo:
// tenant diferente vira not-found, filial fora do escopo (ou nula sob filtro)
// nega o acesso.
func (uc *ProductUseCase) visibleProduct(tenantID string, sc scope.Decision, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if sc.ShouldFilter {
		if product.BranchID == nil || !sc.AllowsBranch(*product.BranchID) {
			return nil, domain.ErrScopeDenied
		}
	}
	return product, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		BranchID:     p.BranchID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		IsSerialized: p.IsSerialized,
		UnitPrice:    p.UnitPrice,
		CreatedAt:    p.CreatedAt,
	}
}

// ToMovementResponse converte o lançamento para o DTO público.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		Seq:           m.Seq,
		BranchID:      m.BranchID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		SerialUnitID:  m.SerialUnitID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
