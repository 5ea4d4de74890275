package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// UserRepository porta de persistência de usuários e seus papéis por tenant.
// Retorna (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	CreateRoleAssignment(ra *entity.RoleAssignment) error
	GetRoleAssignment(userID, tenantID string) (*entity.RoleAssignment, error)
}
