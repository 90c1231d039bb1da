package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Testes da classificação de elegibilidade: função pura, precedência fixa
// processado > sem-mapeamento > sem-estoque > disponivel. Qualquer mudança
// acidental na ordem das checagens quebra estes testes na hora.
// ──────────────────────────────────────────────────────────────────────────────

func itemTeste(qtd int64) entity.ItemPedido {
	return entity.ItemPedido{
		NumeroPedido: "PED-100",
		SKUPedido:    "KIT-01",
		Quantidade:   decimal.NewFromInt(qtd),
		Situacao:     "aprovado",
	}
}

func mapeadoTeste(multiplicador int) *mapeamento.MapeamentoResolvido {
	return &mapeamento.MapeamentoResolvido{
		SKUInterno:    "UNIT-01",
		Multiplicador: multiplicador,
	}
}

func TestClassificar_Processado_TemPrecedenciaMaxima(t *testing.T) {
	// Mesmo sem mapeamento e sem estoque, já processado vence tudo.
	status := estoque.Classificar(itemTeste(2), nil, decimal.Zero, true)
	assert.Equal(t, entity.StatusProcessado, status,
		"linha já baixada deve classificar como processado independente do resto")
}

func TestClassificar_SemMapeamento(t *testing.T) {
	status := estoque.Classificar(itemTeste(2), nil, decimal.NewFromInt(100), false)
	assert.Equal(t, entity.StatusSemMapeamento, status)
}

func TestClassificar_SemEstoque_ConsideraMultiplicador(t *testing.T) {
	// 2 kits x multiplicador 3 = 6 unidades; com 5 em estoque não alcança.
	status := estoque.Classificar(itemTeste(2), mapeadoTeste(3), decimal.NewFromInt(5), false)
	assert.Equal(t, entity.StatusSemEstoque, status,
		"estoque deve ser comparado contra quantidade x multiplicador, não contra a quantidade crua")
}

func TestClassificar_Disponivel_EstoqueExato(t *testing.T) {
	// Saldo exatamente igual ao necessário ainda é disponível.
	status := estoque.Classificar(itemTeste(2), mapeadoTeste(3), decimal.NewFromInt(6), false)
	assert.Equal(t, entity.StatusDisponivel, status)
}

func TestQuantidadeNecessaria_MultiplicadorMinimoUm(t *testing.T) {
	// Multiplicador abaixo de 1 (dado sujo) é tratado como 1.
	got := estoque.QuantidadeNecessaria(0, decimal.NewFromInt(4))
	assert.True(t, got.Equal(decimal.NewFromInt(4)), "multiplicador 0 deve valer 1")

	got = estoque.QuantidadeNecessaria(3, decimal.NewFromInt(4))
	assert.True(t, got.Equal(decimal.NewFromInt(12)))
}

func TestElegivelParaBaixa_GateDeSituacao(t *testing.T) {
	item := itemTeste(1)

	item.Situacao = "aprovado"
	assert.True(t, estoque.ElegivelParaBaixa(item, entity.StatusDisponivel))

	// Situação fora da lista bloqueia mesmo com estoque disponível.
	item.Situacao = "cancelado"
	assert.False(t, estoque.ElegivelParaBaixa(item, entity.StatusDisponivel))

	// Status não-disponível nunca é elegível, mesmo em situação permitida.
	item.Situacao = "faturado"
	assert.False(t, estoque.ElegivelParaBaixa(item, entity.StatusSemEstoque))
	assert.False(t, estoque.ElegivelParaBaixa(item, entity.StatusProcessado))
}

func TestSituacaoPermiteBaixa_ListaCompleta(t *testing.T) {
	permitidas := []string{"aprovado", "preparando-envio", "faturado", "pronto-envio", "em-separacao", "entregue"}
	for _, s := range permitidas {
		assert.True(t, entity.SituacaoPermiteBaixa(s), "situação %q deveria permitir baixa", s)
	}
	assert.False(t, entity.SituacaoPermiteBaixa("cancelado"))
	assert.False(t, entity.SituacaoPermiteBaixa(""))
}
