package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campotec/campotec-api/internal/application/auth"
	"github.com/campotec/campotec-api/internal/application/ledger"
	appscope "github.com/campotec/campotec-api/internal/application/scope"
	"github.com/campotec/campotec-api/internal/application/usecase"
	"github.com/campotec/campotec-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ScopeUC        *appscope.UseCase
	LedgerUC       *ledger.UseCase
	ProductUC      *usecase.ProductUseCase
	UnitUC         *usecase.SerializedUnitUseCase
	BranchUC       *usecase.BranchUseCase
	ServiceOrderUC *usecase.ServiceOrderUseCase
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	scopeHandler := NewScopeHandler(deps.ScopeUC)
	protected.Get("/scope", scopeHandler.Get)

	// Filiais: criação restrita à administração do tenant
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", RequireRole(entity.RoleSuperadmin, entity.RoleAdmin), branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)

	// Produtos e unidades serializadas
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.UnitUC, scopeHandler)
	products.Post("/", RequireRole(entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleManager), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.ListMovements)
	products.Post("/:id/units", RequireRole(entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleManager), productHandler.CreateUnit)
	products.Get("/:id/units", productHandler.ListUnits)

	// Ledger de movimentos
	inventory := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, scopeHandler)
	inventory.Post("/movements", ledgerHandler.RegisterMovement)

	// Ordens de serviço
	orders := protected.Group("/service-orders")
	orderHandler := NewServiceOrderHandler(deps.ServiceOrderUC, scopeHandler)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/consume", orderHandler.ConsumeParts)
}
