package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/alerta"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/pedido"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/bling"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/notifier"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/postgres"
	"github.com/lucasvrs/baixa-estoque-api/internal/infrastructure/redisx"
	httpRouter "github.com/lucasvrs/baixa-estoque-api/internal/interfaces/http"
	"github.com/lucasvrs/baixa-estoque-api/pkg/config"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	// Redis é opcional: sem ele o cooldown de alertas fica desligado
	// (alertas continuam saindo, sem supressão por janela).
	var cooldown alerta.ContadorTTL
	if redisClient, err := redisx.New(ctx, cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("redis indisponível, cooldown de alertas desligado")
	} else {
		defer redisClient.Close()
		cooldown = redisClient
	}

	mapeamentoRepo := postgres.NewMapeamentoRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	vendaRepo := postgres.NewVendaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	alertaCfg := alerta.Config{
		MapeamentosAtivado:  cfg.Alertas.MapeamentosAtivado,
		EstoqueBaixoAtivado: cfg.Alertas.EstoqueBaixoAtivado,
		IntervaloMinutos:    cfg.Alertas.IntervaloMinutos,
		Cooldown:            cfg.Alertas.Cooldown(),
		TimeoutEnvio:        cfg.Alertas.TimeoutEnvio(),
	}
	telegram := notifier.NewTelegramNotifier(cfg.Alertas)
	dispatcher := alerta.NewDispatcher(telegram, cooldown, mapeamentoRepo, produtoRepo, alertaCfg, log)

	mapeamentosUC := mapeamento.NewUseCase(mapeamentoRepo, dispatcher, alertaCfg.TempoReal(), log)
	baixaUC := estoque.NewBaixaUseCase(txRunner, vendaRepo, log)
	feed := bling.NewClient(cfg.Pedidos, log)
	pedidosUC := pedido.NewUseCase(feed, mapeamentosUC, produtoRepo, vendaRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	httpRouter.RegistrarSwagger(app, "./docs/swagger.json", log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PedidosUC:     pedidosUC,
		BaixaUC:       baixaUC,
		MapeamentosUC: mapeamentosUC,
		Alertas:       dispatcher,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
