package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de elegibilidade de uma linha de pedido para baixa de estoque.
const (
	StatusDisponivel    = "disponivel"
	StatusSemEstoque    = "sem-estoque"
	StatusSemMapeamento = "sem-mapeamento"
	StatusProcessado    = "processado"
	StatusProcessando   = "processando" // flag do caller enquanto um lote está em voo
)

// Situações de pedido que permitem baixa, espelhando o fluxo real de
// fulfillment. Fora desta lista a linha nunca é elegível, independente de
// estoque.
var SituacoesPermitemBaixa = map[string]bool{
	"aprovado":         true,
	"preparando-envio": true,
	"faturado":         true,
	"pronto-envio":     true,
	"em-separacao":     true,
	"entregue":         true,
}

// SituacaoPermiteBaixa informa se a situação do pedido está na lista permitida.
func SituacaoPermiteBaixa(situacao string) bool {
	return SituacoesPermitemBaixa[situacao]
}

// ItemPedido é uma linha de pedido vinda do feed externo, identificada apenas
// pelo SKU do marketplace. O motor não pagina nem filtra o feed; consome o
// subconjunto que o caller entregar.
type ItemPedido struct {
	NumeroPedido  string
	SKUPedido     string
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	Situacao      string // situação do pedido no ERP (aprovado, faturado, ...)
	Cliente       string
	DataPedido    time.Time
}
