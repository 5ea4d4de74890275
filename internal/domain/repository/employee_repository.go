package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// EmployeeRepository porta de persistência de funcionários.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByUserID(userID, tenantID string) (*entity.Employee, error)
}
