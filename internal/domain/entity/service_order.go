package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de ordem de serviço.
const (
	OrderStatusAberta      = "aberta"
	OrderStatusEmAndamento = "em_andamento"
	OrderStatusConcluida   = "concluida"
	OrderStatusCancelada   = "cancelada"
)

// ServiceOrder é a ordem de serviço de campo. Para o core ela é o alvo da
// referência polimórfica dos movimentos de consumo de peças; PartsTotal
// acumula o valor das peças baixadas.
type ServiceOrder struct {
	ID           string
	TenantID     string
	BranchID     string
	Number       string
	CustomerName string
	Status       string
	TechnicianID *string
	PartsTotal   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
