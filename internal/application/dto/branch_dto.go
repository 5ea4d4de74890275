package dto

import "time"

// CreateBranchRequest body de POST /api/branches.
type CreateBranchRequest struct {
	Name   string `json:"name"`
	IsMain bool   `json:"is_main"`
}

// BranchResponse representação pública da filial.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}
