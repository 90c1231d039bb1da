package repository

import "github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"

// MapeamentoRepository define o porto de persistência da tabela de tradução
// de SKUs. SKUPedido é a única chave de busca.
type MapeamentoRepository interface {
	// BuscarPorSKUPedido retorna nil, nil quando não existe linha para o SKU.
	BuscarPorSKUPedido(skuPedido string) (*entity.MapeamentoSKU, error)
	// Criar insere um mapeamento novo. Retorna domain.ErrDuplicado quando a
	// constraint única de sku_pedido rejeitar (corrida entre dois callers).
	Criar(m *entity.MapeamentoSKU) error
	// Atualizar grava os campos de resolução preenchidos pelo operador.
	Atualizar(m *entity.MapeamentoSKU) error
	// IncrementarPedidosAguardando soma 1 ao contador de pedidos represados
	// de forma atômica no banco.
	IncrementarPedidosAguardando(skuPedido string) error
	// ListarPendentes lista mapeamentos ativos ainda sem SKU resolvido,
	// ordenados por prioridade e volume de pedidos aguardando, paginados
	// por limit/offset.
	ListarPendentes(limit, offset int) ([]*entity.MapeamentoSKU, error)
}
