package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do estoque interno, identificado pelo SKU interno.
// Quantidade nunca fica negativa: toda mutação passa pelo débito condicional
// do motor de baixa ou por um movimento de correção equivalente.
type Produto struct {
	ID              string
	SKU             string // SKU interno (chave única)
	Nome            string
	Quantidade      decimal.Decimal
	EstoqueMinimo   decimal.Decimal
	EstoqueMaximo   decimal.Decimal
	PrecoCusto      decimal.Decimal
	PrecoVenda      decimal.Decimal
	Ativo           bool
	UltimoMovimento time.Time
	CriadoEm        time.Time
	AtualizadoEm    time.Time
}

// AbaixoDoMinimo indica se o produto está no limiar de alerta de estoque baixo.
func (p *Produto) AbaixoDoMinimo() bool {
	return p.Quantidade.LessThanOrEqual(p.EstoqueMinimo)
}
