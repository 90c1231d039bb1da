package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPedidoDTO é a linha de pedido enriquecida devolvida ao caller: dados do
// feed mais o resultado de resolução/classificação usado para montar o lote.
type ItemPedidoDTO struct {
	NumeroPedido      string          `json:"numero_pedido"`
	SKUPedido         string          `json:"sku_pedido"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	PrecoUnitario     decimal.Decimal `json:"preco_unitario"`
	Situacao          string          `json:"situacao"`
	Cliente           string          `json:"cliente,omitempty"`
	DataPedido        time.Time       `json:"data_pedido"`
	SKUResolvido      string          `json:"sku_resolvido,omitempty"`
	Multiplicador     int             `json:"multiplicador,omitempty"`
	EstoqueDisponivel decimal.Decimal `json:"estoque_disponivel"`
	Status            string          `json:"status"` // disponivel, sem-estoque, sem-mapeamento, processado
	Elegivel          bool            `json:"elegivel"`
}
