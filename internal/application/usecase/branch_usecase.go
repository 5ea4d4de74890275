package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
)

// BranchUseCase CRUD de filiais (administração do tenant).
type BranchUseCase struct {
	branchRepo repository.BranchRepository
}

// NewBranchUseCase constrói o caso de uso de filiais.
func NewBranchUseCase(branchRepo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo}
}

// Create cadastra uma filial. A unicidade da matriz por tenant é garantida
// por índice parcial no banco; violação vira ErrDuplicate.
func (uc *BranchUseCase) Create(ctx context.Context, tenantID string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		IsMain:    in.IsMain,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	resp := toBranchResponse(branch)
	return &resp, nil
}

// GetByID devolve uma filial do tenant.
func (uc *BranchUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	resp := toBranchResponse(branch)
	return &resp, nil
}

// List lista as filiais do tenant.
func (uc *BranchUseCase) List(ctx context.Context, tenantID string) ([]dto.BranchResponse, error) {
	branches, err := uc.branchRepo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{ID: b.ID, Name: b.Name, IsMain: b.IsMain, CreatedAt: b.CreatedAt}
}
