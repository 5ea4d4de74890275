package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceOrderRequest body de POST /api/service-orders.
type CreateServiceOrderRequest struct {
	BranchID     string  `json:"branch_id"`
	Number       string  `json:"number"`
	CustomerName string  `json:"customer_name"`
	TechnicianID *string `json:"technician_id,omitempty"`
}

// ConsumeItemRequest item de consumo de peças de uma OS.
type ConsumeItemRequest struct {
	ProductID        string  `json:"product_id"`
	Quantity         int64   `json:"quantity"`
	SerializedUnitID *string `json:"serialized_unit_id,omitempty"`
}

// ConsumePartsRequest body de POST /api/service-orders/:id/consume. Gera uma
// saída no ledger referenciando a OS.
type ConsumePartsRequest struct {
	Items []ConsumeItemRequest `json:"items"`
}

// ServiceOrderResponse representação pública da OS.
type ServiceOrderResponse struct {
	ID           string          `json:"id"`
	BranchID     string          `json:"branch_id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	TechnicianID *string         `json:"technician_id,omitempty"`
	PartsTotal   decimal.Decimal `json:"parts_total"`
	CreatedAt    time.Time       `json:"created_at"`
}
