package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/application/usecase"
)

// BranchHandler requisições HTTP de filiais (protegido).
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler constrói o handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create cadastra uma filial do tenant.
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é obrigatório"})
	}
	out, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devolve uma filial do tenant.
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetByID(c.Context(), GetTenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista as filiais do tenant.
func (h *BranchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "branches": out})
}
