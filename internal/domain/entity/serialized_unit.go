package entity

import "time"

// Status de unidade serializada. As transições pertencem exclusivamente ao
// ledger: saida -> em_uso, devolucao -> disponivel.
const (
	UnitStatusDisponivel = "disponivel"
	UnitStatusEmUso      = "em_uso"
)

// SerializedUnit é um item físico rastreado individualmente (número de série),
// em oposição ao estoque fungível por quantidade.
type SerializedUnit struct {
	ID           string
	ProductID    string
	SerialNumber string
	Status       string  // disponivel, em_uso
	AssignedTo   *string // técnico portador quando em_uso
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
