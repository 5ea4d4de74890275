package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/application/usecase"
)

// ServiceOrderHandler requisições HTTP de ordens de serviço (protegido).
type ServiceOrderHandler struct {
	uc    *usecase.ServiceOrderUseCase
	scope *ScopeHandler
}

// NewServiceOrderHandler constrói o handler de OS.
func NewServiceOrderHandler(uc *usecase.ServiceOrderUseCase, scope *ScopeHandler) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc, scope: scope}
}

// Create abre uma OS na filial informada.
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.BranchID == "" || in.Number == "" || in.CustomerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id, number e customer_name são obrigatórios"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetTenantID(c), sc, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devolve uma OS visível no escopo do ator.
func (h *ServiceOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), GetTenantID(c), sc, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista as OS do tenant dentro do escopo.
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetTenantID(c), sc, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "service_orders": out})
}

// ConsumeParts baixa peças do estoque para a OS via ledger.
func (h *ServiceOrderHandler) ConsumeParts(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.ConsumePartsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items é obrigatório"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ConsumeParts(c.Context(), GetTenantID(c), GetUserID(c), sc, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movements": out})
}
