package entity

import "time"

// Team é uma equipe de campo. A liderança pode vir por dois caminhos:
// um técnico líder ou um funcionário líder (ambos opcionais).
type Team struct {
	ID                 string
	TenantID           string
	BranchID           *string
	Name               string
	LeaderTechnicianID *string
	LeaderEmployeeID   *string
	CreatedAt          time.Time
}
