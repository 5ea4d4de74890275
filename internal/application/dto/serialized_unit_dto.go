package dto

import "time"

// CreateSerializedUnitRequest body de POST /api/products/:id/units.
type CreateSerializedUnitRequest struct {
	SerialNumber string `json:"serial_number"`
}

// SerializedUnitResponse representação pública da unidade serializada.
type SerializedUnitResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	SerialNumber string    `json:"serial_number"`
	Status       string    `json:"status"`
	AssignedTo   *string   `json:"assigned_to"`
	CreatedAt    time.Time `json:"created_at"`
}
