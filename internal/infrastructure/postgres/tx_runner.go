package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
)

// Ensure TxRunner implements estoque.TxRunner.
var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	vendaRepo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	movimentoRepo repository.MovimentoRepository,
	mapeamentoRepo repository.MapeamentoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	vendaRepo := NewVendaRepository(tx)
	produtoRepo := NewProdutoRepository(tx)
	movimentoRepo := NewMovimentoRepository(tx)
	mapeamentoRepo := NewMapeamentoRepository(tx)

	if err := fn(vendaRepo, produtoRepo, movimentoRepo, mapeamentoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
