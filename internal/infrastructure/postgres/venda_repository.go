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

var _ repository.VendaRepository = (*VendaRepo)(nil)

// VendaRepo implementação de VendaRepository sobre PostgreSQL (usável com
// pool ou tx). A chave única de vendas_baixadas é a âncora de idempotência
// de todo o caminho de baixa.
type VendaRepo struct {
	q Querier
}

// NewVendaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewVendaRepository(q Querier) *VendaRepo {
	return &VendaRepo{q: q}
}

// BuscarPorChave busca a venda baixada pela chave {pedido}-{sku}. nil, nil se
// a linha ainda não foi baixada.
func (r *VendaRepo) BuscarPorChave(chave string) (*entity.VendaBaixada, error) {
	query := `
		SELECT id, chave, numero_pedido, sku_pedido, sku_resolvido, quantidade,
			preco_unitario, total, cliente, data_pedido, status, criado_em
		FROM vendas_baixadas WHERE chave = $1`
	var v entity.VendaBaixada
	err := r.q.QueryRow(context.Background(), query, chave).Scan(
		&v.ID, &v.Chave, &v.NumeroPedido, &v.SKUPedido, &v.SKUResolvido, &v.Quantidade,
		&v.PrecoUnitario, &v.Total, &v.Cliente, &v.DataPedido, &v.Status, &v.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar venda baixada: %w", err)
	}
	return &v, nil
}

// Criar insere o registro terminal. Violação da constraint única da chave é
// devolvida como domain.ErrDuplicado (linha já baixada por outro caminho).
func (r *VendaRepo) Criar(v *entity.VendaBaixada) error {
	query := `
		INSERT INTO vendas_baixadas (id, chave, numero_pedido, sku_pedido, sku_resolvido,
			quantidade, preco_unitario, total, cliente, data_pedido, status, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Chave, v.NumeroPedido, v.SKUPedido, v.SKUResolvido,
		v.Quantidade, v.PrecoUnitario, v.Total, v.Cliente, v.DataPedido, v.Status, v.CriadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("criar venda baixada: %w", err)
	}
	return nil
}
