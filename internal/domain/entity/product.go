package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item de estoque de uma filial.
// CurrentStock é sempre igual ao new_stock do último movimento aceito e nunca
// fica negativo; a escrita é exclusiva do ledger. BranchID nulo deixa o
// produto invisível para consultas escopadas.
type Product struct {
	ID           string
	TenantID     string
	BranchID     *string
	SKU          string
	Name         string
	Description  string
	CurrentStock int64
	MinStock     int64
	IsSerialized bool
	UnitPrice    decimal.Decimal // preço unitário de reposição, usado no total de peças da OS
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
