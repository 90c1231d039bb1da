package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direções de movimento de estoque.
const (
	MovimentoEntrada = "entrada"
	MovimentoSaida   = "saida"
)

// MovimentoEstoque é o registro de auditoria append-only de toda operação que
// altera quantidade. Nunca é atualizado nem removido no caminho feliz;
// QuantidadeMovida é sempre |depois - antes|.
type MovimentoEstoque struct {
	ID               string
	ProdutoID        string
	SKU              string
	Direcao          string // entrada, saida
	QuantidadeAntes  decimal.Decimal
	QuantidadeDepois decimal.Decimal
	QuantidadeMovida decimal.Decimal
	Motivo           string
	Observacoes      string
	CriadoEm         time.Time
}
