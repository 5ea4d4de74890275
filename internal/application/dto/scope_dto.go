package dto

// ScopeResponse é a Decision resolvida, devolvida por GET /api/scope para
// introspecção do cliente. branch_id nulo significa visão irrestrita.
type ScopeResponse struct {
	BranchID       *string  `json:"branch_id"`
	ShouldFilter   bool     `json:"should_filter"`
	HierarchyLevel string   `json:"hierarchy_level"`
	TechnicianID   *string  `json:"technician_id,omitempty"`
	EmployeeID     *string  `json:"employee_id,omitempty"`
	LedTeamIDs     []string `json:"led_team_ids,omitempty"`
}
