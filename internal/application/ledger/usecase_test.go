package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campotec/campotec-api/internal/application/ledger"
	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/internal/domain/scope"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória (mesmos contratos das portas; lock de fila vira no-op
// porque os testes são sequenciais)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	units     map[string]*entity.SerializedUnit
	branches  map[string]*entity.Branch
	movements []*entity.StockMovement
	seq       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*entity.Product{},
		units:    map[string]*entity.SerializedUnit{},
		branches: map[string]*entity.Branch{},
	}
}

// snapshot/restore emulam o rollback da transação real.
func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.units {
		u := *v
		cp.units[k] = &u
	}
	for k, v := range s.branches {
		b := *v
		cp.branches[k] = &b
	}
	cp.movements = append(cp.movements, s.movements...)
	cp.seq = s.seq
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.units = from.units
	s.branches = from.branches
	s.movements = from.movements
	s.seq = from.seq
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.seq++
	m.Seq = r.s.seq
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.BranchID == branchID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) UpdateStockGuarded(id string, previousStock, newStock int64) error {
	p, ok := r.s.products[id]
	if !ok || p.CurrentStock != previousStock {
		return domain.ErrConcurrencyConflict
	}
	p.CurrentStock = newStock
	return nil
}

func (r *fakeProductRepo) ListScoped(string, scope.Decision, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountScoped(string, scope.Decision) (int, error) { return 0, nil }
func (r *fakeProductRepo) ListLowStock(string, scope.Decision) ([]*entity.Product, error) {
	return nil, nil
}

type fakeUnitRepo struct{ s *fakeStore }

func (r *fakeUnitRepo) Create(u *entity.SerializedUnit) error { r.s.units[u.ID] = u; return nil }

func (r *fakeUnitRepo) GetByID(id string) (*entity.SerializedUnit, error) {
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) GetForUpdate(id string) (*entity.SerializedUnit, error) { return r.GetByID(id) }

func (r *fakeUnitRepo) UpdateStatus(id, status string, assignedTo *string) error {
	u, ok := r.s.units[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = status
	u.AssignedTo = assignedTo
	return nil
}

func (r *fakeUnitRepo) ListByProduct(productID, status string) ([]*entity.SerializedUnit, error) {
	var out []*entity.SerializedUnit
	for _, u := range r.s.units {
		if u.ProductID == productID && (status == "" || u.Status == status) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBranchRepo struct{ s *fakeStore }

func (r *fakeBranchRepo) Create(b *entity.Branch) error { r.s.branches[b.ID] = b; return nil }

func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.s.branches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBranchRepo) ListByTenant(tenantID string) ([]*entity.Branch, error) { return nil, nil }

// fakeTxRunner roda o callback direto sobre o store, restaurando o snapshot
// em caso de erro (all-or-nothing, como a transação real).
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.SerializedUnitRepository,
) error) error {
	before := r.s.snapshot()
	err := fn(&fakeMovementRepo{r.s}, &fakeProductRepo{r.s}, &fakeUnitRepo{r.s})
	if err != nil {
		r.s.restore(before)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantID  = "t-1"
	branchID  = "aaaaaaaa-0000-0000-0000-000000000001"
	actorID   = "u-1"
	productID = "p-1"
	unitID    = "su-1"
	tecnicoID = "tec-1"
)

func setup(t *testing.T) (*ledger.UseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.branches[branchID] = &entity.Branch{ID: branchID, TenantID: tenantID, Name: "Filial Centro"}
	bID := branchID
	s.products[productID] = &entity.Product{
		ID: productID, TenantID: tenantID, BranchID: &bID,
		SKU: "CB-050", Name: "Cabo coaxial 50m", CurrentStock: 10, MinStock: 2,
	}
	return ledger.NewUseCase(&fakeTxRunner{s}, &fakeBranchRepo{s}), s
}

func unrestricted() scope.Decision { return scope.Decision{} }

func scopedTo(branch string) scope.Decision {
	return scope.Decision{BranchID: &branch, ShouldFilter: true}
}

func movementInput(movType string, items ...ledger.MovementItem) ledger.MovementInput {
	return ledger.MovementInput{
		TenantID: tenantID,
		BranchID: branchID,
		Type:     movType,
		ActorID:  actorID,
		Items:    items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo e imutabilidade
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaGravaSnapshotEAtualizaSaldo(t *testing.T) {
	uc, s := setup(t)

	movs, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 3}))
	require.NoError(t, err)
	require.Len(t, movs, 1)

	assert.Equal(t, int64(10), movs[0].PreviousStock)
	assert.Equal(t, int64(13), movs[0].NewStock)
	assert.Equal(t, int64(3), movs[0].Quantity)
	assert.Equal(t, int64(13), s.products[productID].CurrentStock,
		"current_stock deve igualar o new_stock do último movimento")
}

func TestRecordMovement_SaidaAlemDoSaldo_RejeitaSemEscrever(t *testing.T) {
	uc, s := setup(t)

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementSaida, ledger.MovementItem{ProductID: productID, Quantity: 15}))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, productID, insufficient.ProductID)
	assert.Equal(t, int64(15), insufficient.Requested)
	assert.Equal(t, int64(10), insufficient.Available)

	assert.Equal(t, int64(10), s.products[productID].CurrentStock, "saldo intocado após rejeição")
	assert.Empty(t, s.movements, "nenhum movimento persiste após rejeição")
}

func TestRecordMovement_MultiItem_TudoOuNada(t *testing.T) {
	uc, s := setup(t)
	bID := branchID
	s.products["p-2"] = &entity.Product{
		ID: "p-2", TenantID: tenantID, BranchID: &bID, SKU: "CN-001", Name: "Conector RJ45", CurrentStock: 1,
	}

	// Segundo item estoura o saldo; o primeiro não pode sobreviver.
	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementSaida,
			ledger.MovementItem{ProductID: productID, Quantity: 4},
			ledger.MovementItem{ProductID: "p-2", Quantity: 2},
		))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), s.products[productID].CurrentStock)
	assert.Equal(t, int64(1), s.products["p-2"].CurrentStock)
	assert.Empty(t, s.movements)
}

func TestRecordMovement_PreservaOrdemDosItens(t *testing.T) {
	uc, s := setup(t)
	bID := branchID
	s.products["p-2"] = &entity.Product{
		ID: "p-2", TenantID: tenantID, BranchID: &bID, SKU: "CN-001", Name: "Conector RJ45", CurrentStock: 5,
	}

	movs, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementEntrada,
			ledger.MovementItem{ProductID: productID, Quantity: 1},
			ledger.MovementItem{ProductID: "p-2", Quantity: 2},
			ledger.MovementItem{ProductID: productID, Quantity: 3},
		))
	require.NoError(t, err)
	require.Len(t, movs, 3)

	assert.Equal(t, productID, movs[0].ProductID)
	assert.Equal(t, "p-2", movs[1].ProductID)
	assert.Equal(t, productID, movs[2].ProductID)
	// O segundo movimento do mesmo produto enxerga o saldo deixado pelo primeiro.
	assert.Equal(t, int64(11), movs[2].PreviousStock)
	assert.Equal(t, int64(14), movs[2].NewStock)
}

func TestRecordMovement_ReplayReproduzTrajetoria(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	steps := []ledger.MovementInput{
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 5}),
		movementInput(entity.MovementSaida, ledger.MovementItem{ProductID: productID, Quantity: 7}),
		movementInput(entity.MovementAjuste, ledger.MovementItem{ProductID: productID, Delta: -3}),
		movementInput(entity.MovementDevolucao, ledger.MovementItem{ProductID: productID, Quantity: 2}),
	}
	for _, in := range steps {
		_, err := uc.RecordMovement(ctx, unrestricted(), in)
		require.NoError(t, err)
	}

	// Replay em ordem de seq: cada snapshot encadeia com o anterior e o último
	// new_stock é o saldo corrente.
	balance := int64(10)
	for _, m := range s.movements {
		require.Equal(t, balance, m.PreviousStock)
		require.GreaterOrEqual(t, m.NewStock, int64(0), "saldo nunca negativo em ponto algum")
		balance = m.NewStock
	}
	assert.Equal(t, balance, s.products[productID].CurrentStock)
	assert.Equal(t, int64(7), balance) // 10 +5 -7 -3 +2
}

func TestRecordMovement_AjusteNegativoAlemDoSaldo_Rejeita(t *testing.T) {
	uc, s := setup(t)

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementAjuste, ledger.MovementItem{ProductID: productID, Delta: -12}))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), s.products[productID].CurrentStock)
}

func TestRecordMovement_AjusteGravaQuantidadeAbsoluta(t *testing.T) {
	uc, _ := setup(t)

	movs, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementAjuste, ledger.MovementItem{ProductID: productID, Delta: -4}))
	require.NoError(t, err)

	assert.Equal(t, int64(4), movs[0].Quantity, "quantidade sempre positiva; o sinal fica no delta")
	assert.Equal(t, int64(6), movs[0].NewStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidades serializadas
// ──────────────────────────────────────────────────────────────────────────────

func setupSerialized(t *testing.T) (*ledger.UseCase, *fakeStore) {
	uc, s := setup(t)
	s.products[productID].IsSerialized = true
	s.units[unitID] = &entity.SerializedUnit{
		ID: unitID, ProductID: productID, SerialNumber: "SN-0001",
		Status: entity.UnitStatusDisponivel,
	}
	return uc, s
}

func TestRecordMovement_SaidaSerializada_MarcaEmUsoComPortador(t *testing.T) {
	uc, s := setupSerialized(t)
	uID := unitID
	tec := tecnicoID

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementSaida,
			ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID, AssignedTo: &tec}))
	require.NoError(t, err)

	unit := s.units[unitID]
	assert.Equal(t, entity.UnitStatusEmUso, unit.Status)
	require.NotNil(t, unit.AssignedTo)
	assert.Equal(t, tecnicoID, *unit.AssignedTo)
}

func TestRecordMovement_DevolucaoRestauraDisponivelSemPortador(t *testing.T) {
	uc, s := setupSerialized(t)
	uID := unitID
	tec := tecnicoID
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, unrestricted(),
		movementInput(entity.MovementSaida,
			ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID, AssignedTo: &tec}))
	require.NoError(t, err)

	_, err = uc.RecordMovement(ctx, unrestricted(),
		movementInput(entity.MovementDevolucao,
			ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID}))
	require.NoError(t, err)

	unit := s.units[unitID]
	assert.Equal(t, entity.UnitStatusDisponivel, unit.Status)
	assert.Nil(t, unit.AssignedTo)
}

func TestRecordMovement_SaidaDeUnidadeEmUso_Conflita(t *testing.T) {
	uc, s := setupSerialized(t)
	outro := "tec-2"
	s.units[unitID].Status = entity.UnitStatusEmUso
	s.units[unitID].AssignedTo = &outro
	uID := unitID
	tec := tecnicoID

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementSaida,
			ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID, AssignedTo: &tec}))

	require.ErrorIs(t, err, domain.ErrUnitUnavailable)
	assert.Equal(t, int64(10), s.products[productID].CurrentStock, "a transação desfaz o saldo")
	assert.Equal(t, outro, *s.units[unitID].AssignedTo, "portador original preservado")
}

func TestRecordMovement_SaidaViaReferenciaTecnico_UsaReferenciaComoPortador(t *testing.T) {
	uc, s := setupSerialized(t)
	uID := unitID

	in := movementInput(entity.MovementSaida,
		ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID})
	in.Reference = &ledger.MovementReference{Type: entity.ReferenceTechnician, ID: tecnicoID}

	movs, err := uc.RecordMovement(context.Background(), unrestricted(), in)
	require.NoError(t, err)

	require.NotNil(t, s.units[unitID].AssignedTo)
	assert.Equal(t, tecnicoID, *s.units[unitID].AssignedTo)
	require.NotNil(t, movs[0].ReferenceType)
	assert.Equal(t, entity.ReferenceTechnician, *movs[0].ReferenceType)
}

func TestRecordMovement_EntradaNaoTocaUnidade(t *testing.T) {
	uc, s := setupSerialized(t)
	tec := tecnicoID
	s.units[unitID].Status = entity.UnitStatusEmUso
	s.units[unitID].AssignedTo = &tec
	uID := unitID

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementEntrada,
			ledger.MovementItem{ProductID: productID, Quantity: 1, SerializedUnitID: &uID}))
	require.NoError(t, err)

	assert.Equal(t, entity.UnitStatusEmUso, s.units[unitID].Status,
		"entrada/ajuste/transferencia nunca alteram a unidade")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escopo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EscopoDeOutraFilial_Nega(t *testing.T) {
	uc, s := setup(t)

	_, err := uc.RecordMovement(context.Background(), scopedTo("outra-filial"),
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 1}))

	require.ErrorIs(t, err, domain.ErrScopeDenied)
	assert.Empty(t, s.movements)
}

func TestRecordMovement_EscopoNegaTudo_NegaSempre(t *testing.T) {
	uc, _ := setup(t)
	sentinel := scope.DenyAllBranchID

	_, err := uc.RecordMovement(context.Background(),
		scope.Decision{BranchID: &sentinel, ShouldFilter: true},
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 1}))

	assert.ErrorIs(t, err, domain.ErrScopeDenied)
}

func TestRecordMovement_ProdutoSemFilial_FailClosedParaEscopoFiltrado(t *testing.T) {
	uc, s := setup(t)
	s.products[productID].BranchID = nil

	_, err := uc.RecordMovement(context.Background(), scopedTo(branchID),
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 1}))

	assert.ErrorIs(t, err, domain.ErrScopeDenied)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Validacao(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.MovementInput
	}{
		{"lista vazia", movementInput(entity.MovementEntrada)},
		{"quantidade zero", movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID})},
		{"quantidade negativa", movementInput(entity.MovementSaida, ledger.MovementItem{ProductID: productID, Quantity: -2})},
		{"ajuste sem delta", movementInput(entity.MovementAjuste, ledger.MovementItem{ProductID: productID, Quantity: 3})},
		{"tipo desconhecido", movementInput("emprestimo", ledger.MovementItem{ProductID: productID, Quantity: 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, unrestricted(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_ProdutoInexistente(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.RecordMovement(context.Background(), unrestricted(),
		movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: "p-nao-existe", Quantity: 1}))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_FilialInexistente(t *testing.T) {
	uc, _ := setup(t)
	in := movementInput(entity.MovementEntrada, ledger.MovementItem{ProductID: productID, Quantity: 1})
	in.BranchID = "filial-fantasma"

	_, err := uc.RecordMovement(context.Background(), unrestricted(), in)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
