package mapeamento

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// Resultado de GarantirMapeamento.
const (
	ResultadoCriado   = "criado"
	ResultadoJaExiste = "ja-existe"
)

// Origens de criação automática de mapeamento. A origem pedido entra com
// prioridade alta porque já existe venda represada esperando a tradução.
const (
	OrigemOperador = "operador"
	OrigemPedido   = "pedido"
)

// MapeamentoResolvido é o resultado de uma resolução bem-sucedida.
type MapeamentoResolvido struct {
	SKUInterno    string
	SKUUnidade    string
	Multiplicador int
}

// AlertadorPendentes dispara o alerta de SKUs pendentes em modo tempo real.
// Falha de entrega nunca propaga para o caller.
type AlertadorPendentes interface {
	AlertarMapeamentosPendentes(ctx context.Context)
}

// UseCase resolve SKUs de pedido e provisiona mapeamentos pendentes quando o
// SKU ainda não tem tradução (auto-mapeamento).
type UseCase struct {
	repo            repository.MapeamentoRepository
	alertador       AlertadorPendentes
	alertaTempoReal bool
	log             *logger.Logger
}

// NewUseCase constrói o caso de uso. alertador pode ser nil quando o alerta
// em tempo real está desabilitado.
func NewUseCase(repo repository.MapeamentoRepository, alertador AlertadorPendentes, alertaTempoReal bool, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:            repo,
		alertador:       alertador,
		alertaTempoReal: alertaTempoReal,
		log:             log,
	}
}

// Resolver busca o SKU do pedido na tabela de tradução. Leitura pura, sem
// efeitos colaterais; retorna domain.ErrSemMapeamento quando não existe
// mapeamento ativo com SKU resolvido.
func (uc *UseCase) Resolver(skuPedido string) (*MapeamentoResolvido, error) {
	return ResolverComRepo(uc.repo, skuPedido)
}

// ResolverComRepo aplica a resolução sobre um repositório arbitrário. O motor
// de baixa usa esta função com o repositório atado à transação do item, para
// re-resolver na hora do débito em vez de confiar em valor cacheado do caller.
func ResolverComRepo(repo repository.MapeamentoRepository, skuPedido string) (*MapeamentoResolvido, error) {
	m, err := repo.BuscarPorSKUPedido(skuPedido)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.Resolvido() {
		return nil, domain.ErrSemMapeamento
	}
	res := &MapeamentoResolvido{
		SKUInterno:    *m.SKUKitResolvido,
		Multiplicador: m.Multiplicador,
	}
	if m.SKUUnidade != nil {
		res.SKUUnidade = *m.SKUUnidade
	}
	if res.Multiplicador < 1 {
		res.Multiplicador = 1
	}
	return res, nil
}

// GarantirMapeamento insere um mapeamento pendente para um SKU desconhecido
// (idempotente por SKU do pedido). Dois callers concorrentes observando
// "não existe" e inserindo ao mesmo tempo não geram duas linhas: a constraint
// única de sku_pedido é o único mecanismo de correção, e a violação é tratada
// como ja-existe, não como erro.
func (uc *UseCase) GarantirMapeamento(ctx context.Context, skuPedido, origem string) (string, error) {
	if skuPedido == "" {
		return "", domain.ErrEntradaInvalida
	}
	existente, err := uc.repo.BuscarPorSKUPedido(skuPedido)
	if err != nil {
		return "", err
	}
	if existente != nil {
		return ResultadoJaExiste, nil
	}

	prioridade := entity.PrioridadeNormal
	if origem == OrigemPedido {
		prioridade = entity.PrioridadeAlta
	}
	now := time.Now()
	novo := &entity.MapeamentoSKU{
		ID:            uuid.New().String(),
		SKUPedido:     skuPedido,
		Multiplicador: 1,
		Ativo:         true,
		Prioridade:    prioridade,
		Observacoes:   "criado automaticamente a partir de " + origem,
		CriadoEm:      now,
		AtualizadoEm:  now,
	}
	if err := uc.repo.Criar(novo); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			// Outro caller venceu a corrida; mesma semântica de ja-existe.
			return ResultadoJaExiste, nil
		}
		return "", err
	}

	uc.log.Info().
		Str("sku_pedido", skuPedido).
		Str("origem", origem).
		Str("prioridade", prioridade).
		Msg("mapeamento pendente criado automaticamente")

	if uc.alertaTempoReal && uc.alertador != nil {
		// Melhor esforço: o dispatcher tem timeout próprio e engole falhas.
		uc.alertador.AlertarMapeamentosPendentes(ctx)
	}
	return ResultadoCriado, nil
}

// RegistrarAguardando incrementa o contador de pedidos represados do SKU,
// usado para priorizar a atenção do operador.
func (uc *UseCase) RegistrarAguardando(skuPedido string) error {
	return uc.repo.IncrementarPedidosAguardando(skuPedido)
}

// ListarPendentes lista os mapeamentos ainda sem tradução, paginados.
func (uc *UseCase) ListarPendentes(limit, offset int) ([]*entity.MapeamentoSKU, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListarPendentes(limit, offset)
}

// PreencherResolucao grava a tradução feita pelo operador. A próxima
// resolução já enxerga o valor novo (leitura sempre direta no banco).
func (uc *UseCase) PreencherResolucao(skuPedido, skuKit, skuUnidade string, multiplicador int, observacoes string) error {
	if skuPedido == "" || skuKit == "" || multiplicador < 1 {
		return domain.ErrEntradaInvalida
	}
	m, err := uc.repo.BuscarPorSKUPedido(skuPedido)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	m.SKUKitResolvido = &skuKit
	if skuUnidade != "" {
		m.SKUUnidade = &skuUnidade
	}
	m.Multiplicador = multiplicador
	if observacoes != "" {
		m.Observacoes = observacoes
	}
	m.Ativo = true
	m.AtualizadoEm = time.Now()
	return uc.repo.Atualizar(m)
}
