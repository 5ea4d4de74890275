package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// SerializedUnitRepository porta de persistência de unidades serializadas.
// UpdateStatus é a única escrita de status/portador; só o ledger a chama.
type SerializedUnitRepository interface {
	Create(unit *entity.SerializedUnit) error
	GetByID(id string) (*entity.SerializedUnit, error)
	GetForUpdate(id string) (*entity.SerializedUnit, error)
	UpdateStatus(id, status string, assignedTo *string) error
	ListByProduct(productID, status string) ([]*entity.SerializedUnit, error)
}
