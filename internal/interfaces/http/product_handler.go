package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/application/usecase"
)

// ProductHandler requisições HTTP de produtos e unidades serializadas (protegido).
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	unitUC *usecase.SerializedUnitUseCase
	scope  *ScopeHandler
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *usecase.ProductUseCase, unitUC *usecase.SerializedUnitUseCase, scope *ScopeHandler) *ProductHandler {
	return &ProductHandler{uc: uc, unitUC: unitUC, scope: scope}
}

// Create cadastra um produto (saldo inicia em zero).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku e name são obrigatórios"})
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

// GetByID devolve um produto visível no escopo do ator.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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

// List lista produtos do tenant dentro do escopo, paginado.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetTenantID(c), sc, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock lista produtos no ponto de reposição ou abaixo.
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListLowStock(c.Context(), GetTenantID(c), sc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// ListMovements devolve o histórico do produto em ordem de replay.
func (h *ProductHandler) ListMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListMovements(c.Context(), GetTenantID(c), sc, id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// CreateUnit registra uma unidade física de um produto serializado.
func (h *ProductHandler) CreateUnit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.CreateSerializedUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.SerialNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "serial_number é obrigatório"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.unitUC.Create(c.Context(), GetTenantID(c), sc, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits lista as unidades do produto, opcionalmente por status.
func (h *ProductHandler) ListUnits(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	sc, err := h.scope.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.unitUC.ListByProduct(c.Context(), GetTenantID(c), sc, id, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "units": out})
}
