package entity

import "time"

// Papéis válidos em RoleAssignment.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
)

// User representa uma identidade do sistema. O vínculo com cada empresa
// (tenant) fica em RoleAssignment; um mesmo usuário pode existir em várias.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em texto plano depois de persistir
	Name         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAssignment é o papel de um usuário dentro de um tenant, com filial de
// lotação opcional. IsDirector é uma capacidade concedida à parte do papel.
type RoleAssignment struct {
	UserID     string
	TenantID   string
	Role       string // superadmin, admin, manager, technician
	BranchID   *string
	IsDirector bool
	CreatedAt  time.Time
}
