package scope

import "github.com/campotec/campotec-api/internal/domain/entity"

// ResolveInput é o snapshot do ator necessário para resolver o escopo.
// Quem carrega esses dados (papel, filial de lotação, vínculos de técnico e
// funcionário, equipes lideradas pelos dois caminhos) é a camada de
// aplicação; Resolve não consulta nada.
type ResolveInput struct {
	Role             string
	IsDirector       bool
	HomeBranchID     *string
	HomeBranchIsMain bool
	ExplicitBranchID *string

	TechnicianID *string
	EmployeeID   *string

	TechnicianLedTeamIDs []string
	EmployeeLedTeamIDs   []string
}

// Resolve calcula a Decision de um ator. Precedência (a primeira regra que
// casar vence):
//
//  1. superadmin: irrestrito, sem override possível.
//  2. admin lotado na matriz: filial explícita se informada, senão irrestrito.
//  3. capacidade de diretor: mesma regra de (2).
//  4. manager lotado na matriz: mesma regra de (2).
//  5. lotação em filial que não é matriz: preso àquela filial, sem override.
//  6. lotação na matriz sem papel de (1)-(4): preso à matriz.
//  7. sem filial resolvível: sentinela nega-tudo (fail-closed, nunca
//     silenciosamente irrestrito).
func Resolve(in ResolveInput) Decision {
	d := Decision{
		TechnicianID: in.TechnicianID,
		EmployeeID:   in.EmployeeID,
		LedTeamIDs:   mergeTeamIDs(in.TechnicianLedTeamIDs, in.EmployeeLedTeamIDs),
	}

	switch {
	case in.Role == entity.RoleSuperadmin:
		// Irrestrito; seleção explícita é ignorada.

	case in.Role == entity.RoleAdmin && in.HomeBranchID != nil && in.HomeBranchIsMain,
		in.IsDirector,
		in.Role == entity.RoleManager && in.HomeBranchID != nil && in.HomeBranchIsMain:
		if in.ExplicitBranchID != nil {
			d.BranchID = in.ExplicitBranchID
			d.ShouldFilter = true
		}

	case in.HomeBranchID != nil:
		// Lotação em filial comum, ou na matriz sem papel que dê visão
		// consolidada: preso à filial de lotação, override não aceito.
		d.BranchID = in.HomeBranchID
		d.ShouldFilter = true

	default:
		sentinel := DenyAllBranchID
		d.BranchID = &sentinel
		d.ShouldFilter = true
	}

	d.HierarchyLevel = resolveLevel(in, d)
	return d
}

// resolveLevel calcula o eixo hierárquico, que restringe propriedade dentro
// do escopo de filial já decidido.
func resolveLevel(in ResolveInput, d Decision) string {
	switch {
	case in.Role == entity.RoleSuperadmin, in.Role == entity.RoleAdmin, in.IsDirector:
		return LevelDirector
	case in.Role == entity.RoleManager:
		return LevelManager
	case len(d.LedTeamIDs) > 0:
		return LevelSupervisor
	case in.TechnicianID != nil || in.EmployeeID != nil:
		return LevelTechnician
	case d.ShouldFilter:
		// Sem vínculo de técnico/funcionário mas com filtro ativo: trata como
		// gestor da própria filial.
		return LevelManager
	default:
		// Contas de serviço e afins, sem vínculo e sem filtro.
		return LevelDirector
	}
}

// mergeTeamIDs une as equipes lideradas pelos dois caminhos de vínculo,
// deduplicando por id e preservando a ordem de chegada.
func mergeTeamIDs(technicianLed, employeeLed []string) []string {
	if len(technicianLed) == 0 && len(employeeLed) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(technicianLed)+len(employeeLed))
	out := make([]string, 0, len(technicianLed)+len(employeeLed))
	for _, id := range technicianLed {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range employeeLed {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
