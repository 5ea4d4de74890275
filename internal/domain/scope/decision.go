// Package scope resolve o escopo de visibilidade por filial e o nível
// hierárquico de um ator. A resolução é uma função pura: ambiguidade nunca
// vira exceção, vira valor explícito (BranchID nulo = irrestrito, sentinela
// = nega tudo), para que nenhum chamador confunda "sem filtro" com
// "sem restrição".
package scope

// Níveis hierárquicos (eixo independente do filtro de filial; restringe
// propriedade dentro do escopo, não a filial em si).
const (
	LevelDirector   = "director"
	LevelManager    = "manager"
	LevelSupervisor = "supervisor"
	LevelTechnician = "technician"
)

// DenyAllBranchID é a filial-sentinela do fail-closed: um UUID zerado nunca
// colide com filiais reais (ids são uuid v4) e mantém a negação expressável
// no mesmo filtro branch_id = $1 das consultas escopadas.
const DenyAllBranchID = "00000000-0000-0000-0000-000000000000"

// Decision é o resultado da resolução de escopo para uma requisição.
// BranchID nulo com ShouldFilter=false significa visão irrestrita;
// BranchID=DenyAllBranchID com ShouldFilter=true nega qualquer leitura.
type Decision struct {
	BranchID       *string
	ShouldFilter   bool
	HierarchyLevel string
	TechnicianID   *string
	EmployeeID     *string
	LedTeamIDs     []string
}

// IsDenyAll informa se a decisão é a sentinela que não casa com filial alguma.
func (d Decision) IsDenyAll() bool {
	return d.ShouldFilter && d.BranchID != nil && *d.BranchID == DenyAllBranchID
}

// AllowsBranch informa se a decisão permite operar sobre a filial dada.
func (d Decision) AllowsBranch(branchID string) bool {
	if !d.ShouldFilter {
		return true
	}
	if d.BranchID == nil {
		// Filtro ativo sem filial é um estado inválido; nega por segurança.
		return false
	}
	return *d.BranchID == branchID && *d.BranchID != DenyAllBranchID
}
