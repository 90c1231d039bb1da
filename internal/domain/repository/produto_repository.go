package repository

import (
	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
)

// ProdutoRepository define o porto de persistência para Produto.
// A quantidade só muda via DebitarSeDisponivel ou via movimento de correção;
// escrita direta de quantidade fora desses caminhos viola o modelo de dados.
type ProdutoRepository interface {
	// BuscarPorSKU retorna nil, nil quando o SKU interno não existe.
	BuscarPorSKU(sku string) (*entity.Produto, error)
	// DebitarSeDisponivel executa o débito condicional
	// (quantidade = quantidade - qtd WHERE quantidade >= qtd) e devolve a
	// quantidade resultante. ok = false quando não havia saldo suficiente;
	// nesse caso o estoque fica intocado.
	DebitarSeDisponivel(sku string, qtd decimal.Decimal) (nova decimal.Decimal, ok bool, err error)
	// ListarAbaixoMinimo lista produtos ativos com quantidade no limiar
	// mínimo ou abaixo (varredura de alerta de estoque baixo).
	ListarAbaixoMinimo(limit int) ([]*entity.Produto, error)
}
