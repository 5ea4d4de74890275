package entity

import "time"

// Employee é o cadastro de funcionário (RH). UserID liga ao login quando o
// funcionário acessa o sistema.
type Employee struct {
	ID        string
	TenantID  string
	UserID    *string
	BranchID  *string
	Name      string
	CreatedAt time.Time
}
