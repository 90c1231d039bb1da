package alerta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// Notificador é o canal externo de mensagens, opaco para o motor: uma única
// operação de envio de texto pré-formatado.
type Notificador interface {
	Enviar(ctx context.Context, texto string) error
}

// ContadorTTL é o contador com expiração usado no rate limit dos alertas
// (Redis INCR + EXPIRE).
type ContadorTTL interface {
	IncrWithTTL(ctx context.Context, chave string, ttl time.Duration) (int64, error)
}

// Config do despacho de alertas. Lida uma vez na construção e passada
// explicitamente; nada aqui é estado global.
type Config struct {
	MapeamentosAtivado  bool
	EstoqueBaixoAtivado bool
	IntervaloMinutos    int // 0 = modo tempo real (dispara junto da operação)
	Cooldown            time.Duration
	TimeoutEnvio        time.Duration
}

// TempoReal indica se o alerta de pendências dispara imediatamente após a
// operação que o gatilha, em vez de esperar a varredura periódica.
func (c Config) TempoReal() bool { return c.IntervaloMinutos <= 0 }

// NewDispatcher constrói o despachante.
func NewDispatcher(
	notif Notificador,
	cooldown ContadorTTL,
	mapeamentoRepo repository.MapeamentoRepository,
	produtoRepo repository.ProdutoRepository,
	cfg Config,
	log *logger.Logger,
) *Dispatcher {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Minute
	}
	if cfg.TimeoutEnvio <= 0 {
		cfg.TimeoutEnvio = 5 * time.Second
	}
	return &Dispatcher{
		notif:          notif,
		cooldown:       cooldown,
		mapeamentoRepo: mapeamentoRepo,
		produtoRepo:    produtoRepo,
		cfg:            cfg,
		log:            log,
	}
}

// Dispatcher envia alertas de operação em melhor esforço: mapeamentos
// pendentes e produtos no limiar de estoque. Falha de entrega é logada e
// engolida; nunca propaga para a operação de negócio que disparou o alerta.
type Dispatcher struct {
	notif          Notificador
	cooldown       ContadorTTL
	mapeamentoRepo repository.MapeamentoRepository
	produtoRepo    repository.ProdutoRepository
	cfg            Config
	log            *logger.Logger
}

// AlertarMapeamentosPendentes resume os SKUs sem tradução com contagem de
// pedidos aguardando e prioridade. Respeita o cooldown por categoria.
func (d *Dispatcher) AlertarMapeamentosPendentes(ctx context.Context) {
	if !d.cfg.MapeamentosAtivado {
		return
	}
	if !d.permitido(ctx, "alerta:mapeamentos") {
		return
	}
	pendentes, err := d.mapeamentoRepo.ListarPendentes(50, 0)
	if err != nil {
		d.log.Warn().Err(err).Msg("listagem de mapeamentos pendentes para alerta")
		return
	}
	if len(pendentes) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ %d SKU(s) sem mapeamento aguardando tradução:\n", len(pendentes))
	for _, m := range pendentes {
		fmt.Fprintf(&b, "- %s (prioridade %s, %d pedido(s) aguardando)\n",
			m.SKUPedido, m.Prioridade, m.PedidosAguardando)
	}
	d.enviar(ctx, b.String(), "mapeamentos")
}

// AlertarEstoqueBaixo resume os produtos no limiar mínimo ou zerados.
func (d *Dispatcher) AlertarEstoqueBaixo(ctx context.Context) {
	if !d.cfg.EstoqueBaixoAtivado {
		return
	}
	if !d.permitido(ctx, "alerta:estoque-baixo") {
		return
	}
	produtos, err := d.produtoRepo.ListarAbaixoMinimo(50)
	if err != nil {
		d.log.Warn().Err(err).Msg("varredura de estoque baixo para alerta")
		return
	}
	// Reaplica o limiar sobre o que a consulta devolveu; um resultado velho
	// de réplica atrasada não entra no resumo.
	abaixo := produtos[:0]
	for _, p := range produtos {
		if p.AbaixoDoMinimo() {
			abaixo = append(abaixo, p)
		}
	}
	if len(abaixo) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📉 %d produto(s) no limiar de estoque:\n", len(abaixo))
	for _, p := range abaixo {
		fmt.Fprintf(&b, "- %s: %s em estoque (mínimo %s)\n",
			p.SKU, p.Quantidade.String(), p.EstoqueMinimo.String())
	}
	d.enviar(ctx, b.String(), "estoque-baixo")
}

// permitido aplica o cooldown por categoria. Erro do contador não bloqueia o
// alerta (melhor um alerta repetido que um alerta perdido).
func (d *Dispatcher) permitido(ctx context.Context, chave string) bool {
	if d.cooldown == nil {
		return true
	}
	count, err := d.cooldown.IncrWithTTL(ctx, chave, d.cfg.Cooldown)
	if err != nil {
		d.log.Warn().Str("chave", chave).Err(err).Msg("cooldown de alerta indisponível")
		return true
	}
	if count > 1 {
		d.log.Debug().Str("chave", chave).Int64("contagem", count).Msg("alerta suprimido por cooldown")
		return false
	}
	return true
}

// enviar entrega a mensagem com timeout próprio, independente do deadline da
// operação que disparou o alerta.
func (d *Dispatcher) enviar(ctx context.Context, texto, categoria string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.TimeoutEnvio)
	defer cancel()
	if err := d.notif.Enviar(ctx, texto); err != nil {
		d.log.Warn().Str("categoria", categoria).Err(err).Msg("entrega de alerta falhou")
		return
	}
	d.log.Info().Str("categoria", categoria).Msg("alerta enviado")
}
