package dto

import (
	"time"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
)

// MapeamentoPendenteDTO resposta de listagem de mapeamentos sem tradução.
type MapeamentoPendenteDTO struct {
	SKUPedido         string    `json:"sku_pedido"`
	Prioridade        string    `json:"prioridade"`
	PedidosAguardando int       `json:"pedidos_aguardando"`
	Observacoes       string    `json:"observacoes,omitempty"`
	CriadoEm          time.Time `json:"criado_em"`
}

// NovoMapeamentoPendenteDTO converte a entidade para a resposta HTTP.
func NovoMapeamentoPendenteDTO(m *entity.MapeamentoSKU) MapeamentoPendenteDTO {
	return MapeamentoPendenteDTO{
		SKUPedido:         m.SKUPedido,
		Prioridade:        m.Prioridade,
		PedidosAguardando: m.PedidosAguardando,
		Observacoes:       m.Observacoes,
		CriadoEm:          m.CriadoEm,
	}
}

// PreencherMapeamentoRequest body para o operador preencher a tradução.
type PreencherMapeamentoRequest struct {
	SKUKit        string `json:"sku_kit" validate:"required"`
	SKUUnidade    string `json:"sku_unidade"`
	Multiplicador int    `json:"multiplicador" validate:"min=1"`
	Observacoes   string `json:"observacoes"`
}
