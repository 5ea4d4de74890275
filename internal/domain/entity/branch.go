package entity

import "time"

// Branch representa uma filial (unidade física/organizacional) dona do seu
// próprio estoque. No máximo uma filial por tenant é marcada como matriz
// (IsMain), a visão consolidada.
type Branch struct {
	ID        string
	TenantID  string
	Name      string
	IsMain    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
