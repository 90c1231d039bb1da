package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
)

var _ repository.MapeamentoRepository = (*MapeamentoRepo)(nil)

// MapeamentoRepo implementação de MapeamentoRepository sobre PostgreSQL
// (usável com pool ou tx).
type MapeamentoRepo struct {
	q Querier
}

// NewMapeamentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMapeamentoRepository(q Querier) *MapeamentoRepo {
	return &MapeamentoRepo{q: q}
}

const colunasMapeamento = `id, sku_pedido, sku_kit_resolvido, sku_unidade, multiplicador,
		ativo, prioridade, pedidos_aguardando, observacoes, criado_em, atualizado_em`

// BuscarPorSKUPedido busca o mapeamento pela chave única. nil, nil se não existe.
func (r *MapeamentoRepo) BuscarPorSKUPedido(skuPedido string) (*entity.MapeamentoSKU, error) {
	query := `
		SELECT ` + colunasMapeamento + `
		FROM mapeamentos_sku WHERE sku_pedido = $1`
	m, err := scanMapeamento(r.q.QueryRow(context.Background(), query, skuPedido))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar mapeamento: %w", err)
	}
	return m, nil
}

// Criar insere o mapeamento. Violação da constraint única de sku_pedido é
// devolvida como domain.ErrDuplicado (corrida de auto-mapeamento).
func (r *MapeamentoRepo) Criar(m *entity.MapeamentoSKU) error {
	query := `
		INSERT INTO mapeamentos_sku (id, sku_pedido, sku_kit_resolvido, sku_unidade, multiplicador,
			ativo, prioridade, pedidos_aguardando, observacoes, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SKUPedido, m.SKUKitResolvido, m.SKUUnidade, m.Multiplicador,
		m.Ativo, m.Prioridade, m.PedidosAguardando, m.Observacoes, m.CriadoEm, m.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert mapeamento: %w", err)
	}
	return nil
}

// Atualizar grava os campos de resolução e metadados.
func (r *MapeamentoRepo) Atualizar(m *entity.MapeamentoSKU) error {
	query := `
		UPDATE mapeamentos_sku
		SET sku_kit_resolvido = $2, sku_unidade = $3, multiplicador = $4, ativo = $5,
			prioridade = $6, observacoes = $7, atualizado_em = $8
		WHERE sku_pedido = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.SKUPedido, m.SKUKitResolvido, m.SKUUnidade, m.Multiplicador, m.Ativo,
		m.Prioridade, m.Observacoes, m.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update mapeamento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementarPedidosAguardando soma 1 ao contador de forma atômica no banco.
func (r *MapeamentoRepo) IncrementarPedidosAguardando(skuPedido string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE mapeamentos_sku
		 SET pedidos_aguardando = pedidos_aguardando + 1, atualizado_em = now()
		 WHERE sku_pedido = $1`,
		skuPedido,
	)
	if err != nil {
		return fmt.Errorf("incrementar pedidos aguardando: %w", err)
	}
	return nil
}

// ListarPendentes lista mapeamentos ativos sem SKU resolvido, mais urgentes
// primeiro, paginados por limit/offset.
func (r *MapeamentoRepo) ListarPendentes(limit, offset int) ([]*entity.MapeamentoSKU, error) {
	query := `
		SELECT ` + colunasMapeamento + `
		FROM mapeamentos_sku
		WHERE ativo = true AND (sku_kit_resolvido IS NULL OR sku_kit_resolvido = '')
		ORDER BY
			CASE prioridade
				WHEN 'urgente' THEN 0
				WHEN 'alta' THEN 1
				WHEN 'normal' THEN 2
				ELSE 3
			END,
			pedidos_aguardando DESC,
			criado_em ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar pendentes: %w", err)
	}
	defer rows.Close()
	var list []*entity.MapeamentoSKU
	for rows.Next() {
		m, err := scanMapeamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapeamento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMapeamento(row pgx.Row) (*entity.MapeamentoSKU, error) {
	var m entity.MapeamentoSKU
	err := row.Scan(
		&m.ID, &m.SKUPedido, &m.SKUKitResolvido, &m.SKUUnidade, &m.Multiplicador,
		&m.Ativo, &m.Prioridade, &m.PedidosAguardando, &m.Observacoes, &m.CriadoEm, &m.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
