package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
)

// ItemBaixaRequest é uma linha selecionada pelo caller para baixa em lote.
// O processador reaplica todas as checagens; o body não é confiado.
type ItemBaixaRequest struct {
	NumeroPedido  string          `json:"numero_pedido" validate:"required"`
	SKUPedido     string          `json:"sku_pedido" validate:"required"`
	Quantidade    decimal.Decimal `json:"quantidade" validate:"required"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Situacao      string          `json:"situacao" validate:"required"`
	Cliente       string          `json:"cliente"`
	DataPedido    time.Time       `json:"data_pedido"`
}

// BaixaLoteRequest body para POST /api/estoque/baixa-lote.
type BaixaLoteRequest struct {
	Itens []ItemBaixaRequest `json:"itens" validate:"required,min=1,dive"`
}

// ParaEntidades converte o body nos itens que o motor consome.
func (r BaixaLoteRequest) ParaEntidades() []entity.ItemPedido {
	itens := make([]entity.ItemPedido, 0, len(r.Itens))
	for _, it := range r.Itens {
		itens = append(itens, entity.ItemPedido{
			NumeroPedido:  it.NumeroPedido,
			SKUPedido:     it.SKUPedido,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Situacao:      it.Situacao,
			Cliente:       it.Cliente,
			DataPedido:    it.DataPedido,
		})
	}
	return itens
}
