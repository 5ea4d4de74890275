package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

func strPtr(s string) *string { return &s }

const (
	matrizID  = "11111111-1111-1111-1111-111111111111"
	filialID  = "22222222-2222-2222-2222-222222222222"
	outraID   = "33333333-3333-3333-3333-333333333333"
	tecnicoID = "44444444-4444-4444-4444-444444444444"
	funcID    = "55555555-5555-5555-5555-555555555555"
)

// ──────────────────────────────────────────────────────────────────────────────
// Precedência de resolução de filial
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SuperadminIrrestritoIgnoraSelecao(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleSuperadmin,
		HomeBranchID:     strPtr(filialID),
		ExplicitBranchID: strPtr(outraID), // deve ser ignorada
	})

	assert.Nil(t, d.BranchID, "superadmin nunca recebe filtro de filial")
	assert.False(t, d.ShouldFilter)
	assert.Equal(t, scope.LevelDirector, d.HierarchyLevel)
}

func TestResolve_AdminNaMatrizSemSelecao_Irrestrito(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleAdmin,
		HomeBranchID:     strPtr(matrizID),
		HomeBranchIsMain: true,
	})

	assert.Nil(t, d.BranchID)
	assert.False(t, d.ShouldFilter)
}

func TestResolve_AdminNaMatrizComSelecao_EscopaNaSelecionada(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleAdmin,
		HomeBranchID:     strPtr(matrizID),
		HomeBranchIsMain: true,
		ExplicitBranchID: strPtr(filialID),
	})

	require.NotNil(t, d.BranchID)
	assert.Equal(t, filialID, *d.BranchID)
	assert.True(t, d.ShouldFilter)
}

func TestResolve_AdminEmFilialComum_PresoNaFilial(t *testing.T) {
	// Admin só tem visão consolidada quando lotado na matriz.
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleAdmin,
		HomeBranchID:     strPtr(filialID),
		HomeBranchIsMain: false,
		ExplicitBranchID: strPtr(outraID), // override não aceito
	})

	require.NotNil(t, d.BranchID)
	assert.Equal(t, filialID, *d.BranchID)
	assert.True(t, d.ShouldFilter)
}

func TestResolve_DiretorSegueRegraDaMatrizMesmoForaDela(t *testing.T) {
	// A capacidade de diretor é concedida à parte do papel e vale mesmo com
	// lotação em filial comum.
	semSelecao := scope.Resolve(scope.ResolveInput{
		Role:         entity.RoleTechnician,
		IsDirector:   true,
		HomeBranchID: strPtr(filialID),
	})
	assert.Nil(t, semSelecao.BranchID)
	assert.False(t, semSelecao.ShouldFilter)
	assert.Equal(t, scope.LevelDirector, semSelecao.HierarchyLevel)

	comSelecao := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleTechnician,
		IsDirector:       true,
		HomeBranchID:     strPtr(filialID),
		ExplicitBranchID: strPtr(outraID),
	})
	require.NotNil(t, comSelecao.BranchID)
	assert.Equal(t, outraID, *comSelecao.BranchID)
	assert.True(t, comSelecao.ShouldFilter)
}

func TestResolve_ManagerNaMatriz_MesmaRegraDoAdmin(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleManager,
		HomeBranchID:     strPtr(matrizID),
		HomeBranchIsMain: true,
		ExplicitBranchID: strPtr(filialID),
	})

	require.NotNil(t, d.BranchID)
	assert.Equal(t, filialID, *d.BranchID)
	assert.True(t, d.ShouldFilter)
	assert.Equal(t, scope.LevelManager, d.HierarchyLevel)
}

func TestResolve_TecnicoNaMatriz_PresoNaMatriz(t *testing.T) {
	// Lotação na matriz sem papel consolidado não dá visão das outras filiais.
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleTechnician,
		HomeBranchID:     strPtr(matrizID),
		HomeBranchIsMain: true,
		TechnicianID:     strPtr(tecnicoID),
		ExplicitBranchID: strPtr(filialID),
	})

	require.NotNil(t, d.BranchID)
	assert.Equal(t, matrizID, *d.BranchID)
	assert.True(t, d.ShouldFilter)
}

func TestResolve_SemFilialResolvivel_FailClosed(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{})

	require.NotNil(t, d.BranchID, "fail-closed nunca devolve BranchID nulo")
	assert.Equal(t, scope.DenyAllBranchID, *d.BranchID)
	assert.True(t, d.ShouldFilter)
	assert.True(t, d.IsDenyAll())
	assert.False(t, d.AllowsBranch(filialID), "a sentinela não casa com filial alguma")
	assert.False(t, d.AllowsBranch(scope.DenyAllBranchID), "nem com a própria sentinela")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eixo hierárquico
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SupervisorUneEquipesDosDoisCaminhosSemDuplicar(t *testing.T) {
	// Lidera a equipe A como funcionário e as equipes A e B como técnico:
	// união deduplicada {A, B}.
	d := scope.Resolve(scope.ResolveInput{
		Role:                 entity.RoleTechnician,
		HomeBranchID:         strPtr(filialID),
		TechnicianID:         strPtr(tecnicoID),
		EmployeeID:           strPtr(funcID),
		TechnicianLedTeamIDs: []string{"team-a", "team-b"},
		EmployeeLedTeamIDs:   []string{"team-a"},
	})

	assert.Equal(t, scope.LevelSupervisor, d.HierarchyLevel)
	assert.ElementsMatch(t, []string{"team-a", "team-b"}, d.LedTeamIDs)
	assert.Len(t, d.LedTeamIDs, 2, "equipe liderada pelos dois caminhos conta uma vez")
}

func TestResolve_TecnicoSemEquipes_NivelTecnico(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:         entity.RoleTechnician,
		HomeBranchID: strPtr(filialID),
		TechnicianID: strPtr(tecnicoID),
	})

	assert.Equal(t, scope.LevelTechnician, d.HierarchyLevel)
	assert.Empty(t, d.LedTeamIDs)
}

func TestResolve_ManagerNaoViraSupervisorPorLiderarEquipe(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:               entity.RoleManager,
		HomeBranchID:       strPtr(filialID),
		EmployeeID:         strPtr(funcID),
		EmployeeLedTeamIDs: []string{"team-a"},
	})

	assert.Equal(t, scope.LevelManager, d.HierarchyLevel)
}

func TestResolve_SemVinculoComFiltro_FallbackManager(t *testing.T) {
	d := scope.Resolve(scope.ResolveInput{
		Role:         entity.RoleTechnician,
		HomeBranchID: strPtr(filialID),
	})

	assert.True(t, d.ShouldFilter)
	assert.Equal(t, scope.LevelManager, d.HierarchyLevel)
}

func TestResolve_ContaDeServicoSemFiltro_FallbackDirector(t *testing.T) {
	// Conta de serviço: sem vínculo de técnico/funcionário e sem filtro ativo.
	d := scope.Resolve(scope.ResolveInput{
		Role:             entity.RoleAdmin,
		HomeBranchID:     strPtr(matrizID),
		HomeBranchIsMain: true,
	})

	assert.False(t, d.ShouldFilter)
	assert.Equal(t, scope.LevelDirector, d.HierarchyLevel)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pureza e helpers
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_EhPura_MesmaEntradaMesmaSaida(t *testing.T) {
	in := scope.ResolveInput{
		Role:                 entity.RoleManager,
		HomeBranchID:         strPtr(matrizID),
		HomeBranchIsMain:     true,
		ExplicitBranchID:     strPtr(filialID),
		TechnicianID:         strPtr(tecnicoID),
		TechnicianLedTeamIDs: []string{"team-a"},
	}

	first := scope.Resolve(in)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, scope.Resolve(in))
	}
}

func TestDecision_AllowsBranch(t *testing.T) {
	irrestrita := scope.Decision{}
	assert.True(t, irrestrita.AllowsBranch(filialID))

	escopada := scope.Decision{BranchID: strPtr(filialID), ShouldFilter: true}
	assert.True(t, escopada.AllowsBranch(filialID))
	assert.False(t, escopada.AllowsBranch(outraID))

	invalida := scope.Decision{ShouldFilter: true} // filtro ativo sem filial
	assert.False(t, invalida.AllowsBranch(filialID), "estado inválido nega por segurança")
}
