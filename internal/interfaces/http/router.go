package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/alerta"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/pedido"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	PedidosUC     *pedido.UseCase
	BaixaUC       *estoque.BaixaUseCase
	MapeamentosUC *mapeamento.UseCase
	Alertas       *alerta.Dispatcher
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Pedidos enriquecidos (feed + mapeamento + estoque + elegibilidade)
	pedidos := api.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidosUC)
	pedidos.Get("/", pedidoHandler.Listar)

	// Baixa de estoque em lote
	est := api.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.BaixaUC)
	est.Post("/baixa-lote", estoqueHandler.BaixaLote)

	// Mapeamentos de SKU
	mapeamentos := api.Group("/mapeamentos")
	mapeamentoHandler := NewMapeamentoHandler(deps.MapeamentosUC)
	mapeamentos.Get("/pendentes", mapeamentoHandler.ListarPendentes)
	mapeamentos.Post("/:sku/garantir", mapeamentoHandler.Garantir)
	mapeamentos.Put("/:sku", mapeamentoHandler.Preencher)

	// Reenvio manual dos alertas de operação
	alertas := api.Group("/alertas")
	alertaHandler := NewAlertaHandler(deps.Alertas)
	alertas.Post("/reenviar", alertaHandler.Reenviar)
}
