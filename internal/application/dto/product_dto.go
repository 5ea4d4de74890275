package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body de POST /api/products.
type CreateProductRequest struct {
	BranchID     *string         `json:"branch_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MinStock     int64           `json:"min_stock"`
	IsSerialized bool            `json:"is_serialized"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ProductResponse representação pública do produto.
type ProductResponse struct {
	ID           string          `json:"id"`
	BranchID     *string         `json:"branch_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	IsSerialized bool            `json:"is_serialized"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListResponse listagem paginada.
type ProductListResponse struct {
	Total    int               `json:"total"`
	Products []ProductResponse `json:"products"`
}
