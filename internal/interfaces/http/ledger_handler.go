package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/application/ledger"
	"github.com/campotec/campotec-api/internal/application/usecase"
	"github.com/campotec/campotec-api/internal/infrastructure/metrics"
)

// LedgerHandler registro de movimentos de estoque (protegido).
type LedgerHandler struct {
	uc    *ledger.UseCase
	scope *ScopeHandler
}

// NewLedgerHandler constrói o handler do ledger.
func NewLedgerHandler(uc *ledger.UseCase, scope *ScopeHandler) *LedgerHandler {
	return &LedgerHandler{uc: uc, scope: scope}
}

// RegisterMovement registra um movimento multi-item. Ou todos os itens
// aplicam, ou nenhum.
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.BranchID == "" || in.Type == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id, type e items são obrigatórios"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}

	input := ledger.MovementInput{
		TenantID: GetTenantID(c),
		BranchID: in.BranchID,
		Type:     in.Type,
		ActorID:  GetUserID(c),
	}
	if in.ReferenceType != nil && in.ReferenceID != nil {
		input.Reference = &ledger.MovementReference{Type: *in.ReferenceType, ID: *in.ReferenceID}
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, ledger.MovementItem{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			Delta:            item.Delta,
			SerializedUnitID: item.SerializedUnitID,
			AssignedTo:       item.AssignedTo,
		})
	}

	movements, err := h.uc.RecordMovement(c.Context(), sc, input)
	if err != nil {
		return respondError(c, err)
	}
	metrics.MovementsRecorded.WithLabelValues(in.Type).Add(float64(len(movements)))

	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, usecase.ToMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movements": out})
}
