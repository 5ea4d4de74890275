// Package metrics expõe os contadores Prometheus da aplicação.
// A coleta fica no registrador padrão; o handler /metrics é montado no main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsRecorded conta lançamentos do ledger por tipo de movimento.
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campotec",
		Subsystem: "ledger",
		Name:      "movements_recorded_total",
		Help:      "Movimentos de estoque registrados, por tipo.",
	}, []string{"type"})

	// ScopeDenials conta acessos negados pela resolução de escopo.
	ScopeDenials = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campotec",
		Subsystem: "scope",
		Name:      "denials_total",
		Help:      "Requisições negadas por escopo de filial.",
	})

	// StockConflicts conta escritas de saldo perdidas para outra transação.
	StockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campotec",
		Subsystem: "ledger",
		Name:      "stock_conflicts_total",
		Help:      "Atualizações de saldo rejeitadas pelo guard de concorrência.",
	})
)
