package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatusStockBaixado é o marcador terminal de uma linha de pedido já baixada.
const StatusStockBaixado = "stock_baixado"

// VendaBaixada é a âncora de idempotência do caminho de baixa: a chave única
// {numero_pedido}-{sku_pedido} impede que a mesma linha seja debitada duas
// vezes, inclusive entre retries, lotes concorrentes e reinícios do processo.
type VendaBaixada struct {
	ID            string
	Chave         string // {numero_pedido}-{sku_pedido} (chave única)
	NumeroPedido  string
	SKUPedido     string
	SKUResolvido  string
	Quantidade    decimal.Decimal // quantidade debitada do estoque interno
	PrecoUnitario decimal.Decimal // preço do pedido rateado pelo multiplicador
	Total         decimal.Decimal
	Cliente       string
	DataPedido    time.Time
	Status        string // stock_baixado
	CriadoEm      time.Time
}

// ChaveIdempotencia monta a chave única de uma linha de pedido.
func ChaveIdempotencia(numeroPedido, skuPedido string) string {
	return fmt.Sprintf("%s-%s", numeroPedido, skuPedido)
}
