package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação de ProdutoRepository sobre PostgreSQL (usável com
// pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const colunasProduto = `id, sku, nome, quantidade, estoque_minimo, estoque_maximo,
		preco_custo, preco_venda, ativo, ultimo_movimento, criado_em, atualizado_em`

// BuscarPorSKU busca o produto pelo SKU interno. nil, nil se não existe.
func (r *ProdutoRepo) BuscarPorSKU(sku string) (*entity.Produto, error) {
	query := `
		SELECT ` + colunasProduto + `
		FROM produtos WHERE sku = $1`
	var p entity.Produto
	err := r.q.QueryRow(context.Background(), query, sku).Scan(
		&p.ID, &p.SKU, &p.Nome, &p.Quantidade, &p.EstoqueMinimo, &p.EstoqueMaximo,
		&p.PrecoCusto, &p.PrecoVenda, &p.Ativo, &p.UltimoMovimento, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar produto: %w", err)
	}
	return &p, nil
}

// DebitarSeDisponivel aplica o débito condicional: decrementa somente quando
// há saldo, numa única instrução. Dois lotes concorrentes no mesmo SKU nunca
// levam a quantidade abaixo de zero; quem chega sem saldo recebe ok = false e
// o estoque fica como estava.
func (r *ProdutoRepo) DebitarSeDisponivel(sku string, qtd decimal.Decimal) (decimal.Decimal, bool, error) {
	query := `
		UPDATE produtos
		SET quantidade = quantidade - $2, ultimo_movimento = now(), atualizado_em = now()
		WHERE sku = $1 AND quantidade >= $2
		RETURNING quantidade`
	var nova decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, sku, qtd).Scan(&nova)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("debitar produto: %w", err)
	}
	return nova, true, nil
}

// ListarAbaixoMinimo lista produtos ativos no limiar mínimo ou abaixo,
// mais críticos primeiro (varredura de alerta).
func (r *ProdutoRepo) ListarAbaixoMinimo(limit int) ([]*entity.Produto, error) {
	query := `
		SELECT ` + colunasProduto + `
		FROM produtos
		WHERE ativo = true AND quantidade <= estoque_minimo
		ORDER BY quantidade ASC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("listar abaixo do minimo: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		var p entity.Produto
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Nome, &p.Quantidade, &p.EstoqueMinimo, &p.EstoqueMaximo,
			&p.PrecoCusto, &p.PrecoVenda, &p.Ativo, &p.UltimoMovimento, &p.CriadoEm, &p.AtualizadoEm,
		); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
