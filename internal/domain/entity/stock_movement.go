package entity

import "time"

// Tipos de movimento de estoque.
const (
	MovementEntrada       = "entrada"
	MovementSaida         = "saida"
	MovementTransferencia = "transferencia"
	MovementAjuste        = "ajuste"
	MovementDevolucao     = "devolucao"
)

// Tipos de referência polimórfica de um movimento.
const (
	ReferenceServiceOrder = "service_order"
	ReferenceTechnician   = "technician"
)

// ValidMovementType informa se o tipo de movimento é conhecido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementEntrada, MovementSaida, MovementTransferencia, MovementAjuste, MovementDevolucao:
		return true
	}
	return false
}

// StockMovement é um lançamento imutável do ledger: criado uma vez, nunca
// editado ou apagado. PreviousStock/NewStock são o snapshot do saldo no
// momento do aceite; Seq é atribuído pelo banco e dá a ordem total de replay.
type StockMovement struct {
	ID            string
	Seq           int64
	TenantID      string
	BranchID      string
	ProductID     string
	Type          string // entrada, saida, transferencia, ajuste, devolucao
	Quantity      int64  // sempre > 0; o sinal vem do tipo/delta
	PreviousStock int64
	NewStock      int64
	SerialUnitID  *string
	ReferenceType *string // service_order | technician
	ReferenceID   *string
	CreatedBy     string
	CreatedAt     time.Time
}
