package entity

import "time"

// Prioridades de atendimento de um mapeamento pendente.
const (
	PrioridadeBaixa   = "baixa"
	PrioridadeNormal  = "normal"
	PrioridadeAlta    = "alta"
	PrioridadeUrgente = "urgente"
)

// MapeamentoSKU traduz o SKU que chega no pedido (marketplace/ERP) para o SKU
// interno do estoque. SKUPedido é único e é a única chave de busca.
// SKUKitResolvido fica nulo até um operador preencher a tradução; enquanto
// isso o mapeamento conta como pendente.
type MapeamentoSKU struct {
	ID                string
	SKUPedido         string  // SKU como aparece na linha do pedido (chave única)
	SKUKitResolvido   *string // SKU interno do kit; nil = pendente
	SKUUnidade        *string // SKU da unidade avulsa quando o kit decompõe (opcional)
	Multiplicador     int     // unidades internas consumidas por unidade do SKU do pedido (>= 1)
	Ativo             bool
	Prioridade        string // baixa, normal, alta, urgente
	PedidosAguardando int    // pedidos represados esperando a tradução
	Observacoes       string
	CriadoEm          time.Time
	AtualizadoEm      time.Time
}

// Resolvido informa se o mapeamento já pode ser usado para baixa de estoque.
func (m *MapeamentoSKU) Resolvido() bool {
	return m.Ativo && m.SKUKitResolvido != nil && *m.SKUKitResolvido != ""
}
