package repository

import (
	"github.com/shopspring/decimal"

	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// ServiceOrderRepository porta de persistência de ordens de serviço.
type ServiceOrderRepository interface {
	Create(order *entity.ServiceOrder) error
	GetByID(id string) (*entity.ServiceOrder, error)
	AddToPartsTotal(id string, amount decimal.Decimal) error
	UpdateStatus(id, status string) error
	ListScoped(tenantID string, d scope.Decision, limit, offset int) ([]*entity.ServiceOrder, error)
}
