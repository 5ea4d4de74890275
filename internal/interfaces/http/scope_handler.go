package http

import (
	"github.com/gofiber/fiber/v2"

	appscope "github.com/campotec/campotec-api/internal/application/scope"
	"github.com/campotec/campotec-api/internal/application/dto"
	domscope "github.com/campotec/campotec-api/internal/domain/scope"
)

// HeaderBranchID seleção manual de filial pelo cliente. Quem pode ver tudo
// usa o header para restringir a visão a uma filial; quem é lotado numa
// filial tem o header ignorado pela resolução.
const HeaderBranchID = "X-Branch-ID"

// ScopeHandler expõe a Decision resolvida e serve de resolvedor para os
// demais handlers protegidos.
type ScopeHandler struct {
	uc *appscope.UseCase
}

// NewScopeHandler constrói o handler de escopo.
func NewScopeHandler(uc *appscope.UseCase) *ScopeHandler {
	return &ScopeHandler{uc: uc}
}

// Resolve monta a Decision do ator da requisição. A resolução acontece a
// cada requisição; nada de escopo fica em cache ou no token.
func (h *ScopeHandler) Resolve(c *fiber.Ctx) (domscope.Decision, error) {
	var explicit *string
	if v := c.Get(HeaderBranchID); v != "" {
		explicit = &v
	} else if v := c.Query("branch_id"); v != "" {
		explicit = &v
	}
	return h.uc.ResolveScope(c.Context(), GetUserID(c), GetTenantID(c), explicit)
}

// Get devolve a Decision do ator para introspecção do cliente.
func (h *ScopeHandler) Get(c *fiber.Ctx) error {
	d, err := h.Resolve(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ScopeResponse{
		BranchID:       d.BranchID,
		ShouldFilter:   d.ShouldFilter,
		HierarchyLevel: d.HierarchyLevel,
		TechnicianID:   d.TechnicianID,
		EmployeeID:     d.EmployeeID,
		LedTeamIDs:     d.LedTeamIDs,
	})
}
