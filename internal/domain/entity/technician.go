package entity

import "time"

// Technician é o cadastro de técnico de campo. UserID liga ao login;
// EmployeeID liga ao cadastro de RH quando o técnico também é funcionário.
type Technician struct {
	ID         string
	TenantID   string
	UserID     *string
	EmployeeID *string
	BranchID   *string
	Name       string
	CreatedAt  time.Time
}
