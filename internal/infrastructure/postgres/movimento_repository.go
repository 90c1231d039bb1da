package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
)

var _ repository.MovimentoRepository = (*MovimentoRepo)(nil)

// MovimentoRepo implementação append-only do livro de movimentos sobre
// PostgreSQL (usável com pool ou tx).
type MovimentoRepo struct {
	q Querier
}

// NewMovimentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentoRepository(q Querier) *MovimentoRepo {
	return &MovimentoRepo{q: q}
}

// Criar persiste um movimento de estoque.
func (r *MovimentoRepo) Criar(mov *entity.MovimentoEstoque) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimentos_estoque (id, produto_id, sku, direcao, quantidade_antes,
			quantidade_depois, quantidade_movida, motivo, observacoes, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ProdutoID, mov.SKU, mov.Direcao, mov.QuantidadeAntes,
		mov.QuantidadeDepois, mov.QuantidadeMovida, mov.Motivo, mov.Observacoes, mov.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("criar movimento: %w", err)
	}
	return nil
}
