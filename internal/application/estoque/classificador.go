package estoque

import (
	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
)

// Classificar é a função pura de elegibilidade de uma linha de pedido.
// Precedência: já processado > sem mapeamento > sem estoque > disponível.
// O status processando não deriva de estado persistido; é flag do caller
// enquanto um lote está em voo.
func Classificar(item entity.ItemPedido, mapeado *mapeamento.MapeamentoResolvido, estoqueAtual decimal.Decimal, jaProcessado bool) string {
	if jaProcessado {
		return entity.StatusProcessado
	}
	if mapeado == nil {
		return entity.StatusSemMapeamento
	}
	necessario := QuantidadeNecessaria(mapeado.Multiplicador, item.Quantidade)
	if estoqueAtual.LessThan(necessario) {
		return entity.StatusSemEstoque
	}
	return entity.StatusDisponivel
}

// QuantidadeNecessaria calcula as unidades internas consumidas pela linha:
// multiplicador do kit x quantidade pedida.
func QuantidadeNecessaria(multiplicador int, quantidadePedida decimal.Decimal) decimal.Decimal {
	if multiplicador < 1 {
		multiplicador = 1
	}
	return quantidadePedida.Mul(decimal.NewFromInt(int64(multiplicador)))
}

// ElegivelParaBaixa aplica o gate de situação do pedido por cima da
// classificação: só linhas em situação permitida entram em lote, independente
// de estoque.
func ElegivelParaBaixa(item entity.ItemPedido, status string) bool {
	return status == entity.StatusDisponivel && entity.SituacaoPermiteBaixa(item.Situacao)
}
