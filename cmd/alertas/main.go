package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/alerta"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/notifier"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/postgres"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/redisx"
	"github.com/lucasvrs/baixa-estoque-api/pkg/config"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// chave do lock distribuído da varredura: garante uma única instância
// varrendo por ciclo quando há réplicas do worker.
const lockVarredura = "lock:alertas:varredura"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	alertaCfg := alerta.Config{
		MapeamentosAtivado:  cfg.Alertas.MapeamentosAtivado,
		EstoqueBaixoAtivado: cfg.Alertas.EstoqueBaixoAtivado,
		IntervaloMinutos:    cfg.Alertas.IntervaloMinutos,
		Cooldown:            cfg.Alertas.Cooldown(),
		TimeoutEnvio:        cfg.Alertas.TimeoutEnvio(),
	}
	if alertaCfg.TempoReal() {
		log.Info().Msg("alertas em modo tempo real, worker de varredura não é necessário")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	var redisClient *redisx.Client
	if redisClient, err = redisx.New(ctx, cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("redis indisponível, varredura sem lock nem cooldown")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	mapeamentoRepo := postgres.NewMapeamentoRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)

	var cooldown alerta.ContadorTTL
	if redisClient != nil {
		cooldown = redisClient
	}

	telegram := notifier.NewTelegramNotifier(cfg.Alertas)
	dispatcher := alerta.NewDispatcher(telegram, cooldown, mapeamentoRepo, produtoRepo, alertaCfg, log)

	intervalo := time.Duration(cfg.Alertas.IntervaloMinutos) * time.Minute
	dono := uuid.NewString()

	log.Info().
		Dur("intervalo", intervalo).
		Str("instancia", dono).
		Msg("worker de alertas iniciado")

	// Primeira varredura imediata, depois no ritmo do ticker.
	varrer(ctx, dispatcher, redisClient, dono, intervalo, log)

	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker de alertas encerrado")
			return
		case <-ticker.C:
			varrer(ctx, dispatcher, redisClient, dono, intervalo, log)
		}
	}
}

// varrer executa um ciclo de alertas sob o lock distribuído. Sem Redis, a
// varredura roda sem coordenação (aceitável para instância única).
func varrer(ctx context.Context, d *alerta.Dispatcher, rc *redisx.Client, dono string, intervalo time.Duration, log *logger.Logger) {
	if rc != nil {
		ok, err := rc.AdquirirLock(ctx, lockVarredura, dono, intervalo/2)
		if err != nil {
			log.Warn().Err(err).Msg("falha ao adquirir lock da varredura, seguindo sem lock")
		} else if !ok {
			log.Debug().Msg("varredura em andamento em outra instância, pulando ciclo")
			return
		} else {
			defer func() {
				if err := rc.LiberarLock(ctx, lockVarredura, dono); err != nil {
					log.Warn().Err(err).Msg("falha ao liberar lock da varredura")
				}
			}()
		}
	}

	d.AlertarMapeamentosPendentes(ctx)
	d.AlertarEstoqueBaixo(ctx)
}
