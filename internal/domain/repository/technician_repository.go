package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// TechnicianRepository porta de persistência de técnicos de campo.
type TechnicianRepository interface {
	Create(technician *entity.Technician) error
	GetByID(id string) (*entity.Technician, error)
	GetByUserID(userID, tenantID string) (*entity.Technician, error)
}
