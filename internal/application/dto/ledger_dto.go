package dto

import "time"

// MovementItemRequest item de RegisterMovementRequest. quantity vale para
// entrada/saida/devolucao; delta (assinado) vale para ajuste/transferencia.
type MovementItemRequest struct {
	ProductID        string  `json:"product_id"`
	Quantity         int64   `json:"quantity,omitempty"`
	Delta            int64   `json:"delta,omitempty"`
	SerializedUnitID *string `json:"serialized_unit_id,omitempty"`
	AssignedTo       *string `json:"assigned_to,omitempty"`
}

// RegisterMovementRequest body de POST /api/inventory/movements.
type RegisterMovementRequest struct {
	BranchID      string                `json:"branch_id"`
	Type          string                `json:"type"`
	ReferenceType *string               `json:"reference_type,omitempty"`
	ReferenceID   *string               `json:"reference_id,omitempty"`
	Items         []MovementItemRequest `json:"items"`
}

// StockMovementResponse um lançamento do ledger.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	BranchID      string    `json:"branch_id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	SerialUnitID  *string   `json:"serial_unit_id,omitempty"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	ReferenceID   *string   `json:"reference_id,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
