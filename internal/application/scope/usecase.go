package scope

import (
	"context"

	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/repository"
	domscope "github.com/campotec/campotec-api/internal/domain/scope"
)

// UseCase monta o snapshot do ator (papel, filial de lotação, vínculos de
// técnico/funcionário, equipes lideradas) e delega à resolução pura em
// domain/scope. A Decision resultante é passada como argumento para cada
// operação escopada; nunca é guardada em estado global, para não vazar escopo
// velho quando o ator troca de filial no meio da sessão.
type UseCase struct {
	userRepo       repository.UserRepository
	branchRepo     repository.BranchRepository
	technicianRepo repository.TechnicianRepository
	employeeRepo   repository.EmployeeRepository
	teamRepo       repository.TeamRepository
}

// NewUseCase constrói o caso de uso de escopo.
func NewUseCase(
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	technicianRepo repository.TechnicianRepository,
	employeeRepo repository.EmployeeRepository,
	teamRepo repository.TeamRepository,
) *UseCase {
	return &UseCase{
		userRepo:       userRepo,
		branchRepo:     branchRepo,
		technicianRepo: technicianRepo,
		employeeRepo:   employeeRepo,
		teamRepo:       teamRepo,
	}
}

// ResolveScope resolve a Decision do usuário dentro do tenant.
// explicitBranchID é a seleção manual de filial (header X-Branch-ID); quando
// informada, precisa existir e pertencer ao tenant. Usuário sem papel no
// tenant não é erro: resolve para a sentinela nega-tudo (fail-closed).
func (uc *UseCase) ResolveScope(ctx context.Context, userID, tenantID string, explicitBranchID *string) (domscope.Decision, error) {
	var in domscope.ResolveInput

	ra, err := uc.userRepo.GetRoleAssignment(userID, tenantID)
	if err != nil {
		return domscope.Decision{}, err
	}
	if ra != nil {
		in.Role = ra.Role
		in.IsDirector = ra.IsDirector
		if ra.BranchID != nil {
			home, err := uc.branchRepo.GetByID(*ra.BranchID)
			if err != nil {
				return domscope.Decision{}, err
			}
			// Lotação apontando para filial inexistente conta como sem
			// filial: cai no fail-closed em vez de abrir visão.
			if home != nil && home.TenantID == tenantID {
				in.HomeBranchID = ra.BranchID
				in.HomeBranchIsMain = home.IsMain
			}
		}
	}

	if explicitBranchID != nil {
		selected, err := uc.branchRepo.GetByID(*explicitBranchID)
		if err != nil {
			return domscope.Decision{}, err
		}
		if selected == nil || selected.TenantID != tenantID {
			return domscope.Decision{}, domain.ErrNotFound
		}
		in.ExplicitBranchID = explicitBranchID
	}

	technician, err := uc.technicianRepo.GetByUserID(userID, tenantID)
	if err != nil {
		return domscope.Decision{}, err
	}
	employee, err := uc.employeeRepo.GetByUserID(userID, tenantID)
	if err != nil {
		return domscope.Decision{}, err
	}
	// O vínculo de funcionário também pode vir através do cadastro de técnico.
	if employee == nil && technician != nil && technician.EmployeeID != nil {
		employee, err = uc.employeeRepo.GetByID(*technician.EmployeeID)
		if err != nil {
			return domscope.Decision{}, err
		}
	}

	if technician != nil {
		in.TechnicianID = &technician.ID
		teams, err := uc.teamRepo.ListLedByTechnician(technician.ID)
		if err != nil {
			return domscope.Decision{}, err
		}
		for _, team := range teams {
			in.TechnicianLedTeamIDs = append(in.TechnicianLedTeamIDs, team.ID)
		}
	}
	if employee != nil {
		in.EmployeeID = &employee.ID
		teams, err := uc.teamRepo.ListLedByEmployee(employee.ID)
		if err != nil {
			return domscope.Decision{}, err
		}
		for _, team := range teams {
			in.EmployeeLedTeamIDs = append(in.EmployeeLedTeamIDs, team.ID)
		}
	}

	return domscope.Resolve(in), nil
}
