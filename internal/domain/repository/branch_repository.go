package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// BranchRepository porta de persistência de filiais.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByTenant(tenantID string) ([]*entity.Branch, error)
}
