package estoque

import (
	"context"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Cada item do lote roda na sua própria
// transação: débito, movimento e venda baixada saem atômicos por item.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		vendaRepo repository.VendaRepository,
		produtoRepo repository.ProdutoRepository,
		movimentoRepo repository.MovimentoRepository,
		mapeamentoRepo repository.MapeamentoRepository,
	) error) error
}
