package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists  = errors.New("e-mail já cadastrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
	ErrScopeDenied         = errors.New("operação fora do escopo de filial do usuário")
	ErrInsufficientStock   = errors.New("estoque insuficiente")
	ErrUnitUnavailable     = errors.New("unidade serializada indisponível")
	ErrConcurrencyConflict = errors.New("conflito de concorrência; releia o saldo e repita")
)

// InsufficientStockError carrega o detalhe que a API precisa devolver quando
// uma saída estoura o saldo. Desembrulha para ErrInsufficientStock, então
// errors.Is continua funcionando nos chamadores.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para o produto %s: solicitado %d, disponível %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
