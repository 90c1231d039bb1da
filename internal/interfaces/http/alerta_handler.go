package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/alerta"
)

// AlertaHandler atende o reenvio manual dos alertas de operação.
type AlertaHandler struct {
	dispatcher *alerta.Dispatcher
}

// NewAlertaHandler constrói o handler.
func NewAlertaHandler(dispatcher *alerta.Dispatcher) *AlertaHandler {
	return &AlertaHandler{dispatcher: dispatcher}
}

// Reenviar godoc
// @Summary      Reenviar alertas pendentes
// @Description  Dispara imediatamente o resumo de SKUs sem mapeamento e o de
//
//	estoque baixo. Entrega é melhor esforço: a resposta confirma o
//	disparo, não a entrega.
//
// @Tags         alertas
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /api/alertas/reenviar [post]
func (h *AlertaHandler) Reenviar(c *fiber.Ctx) error {
	h.dispatcher.AlertarMapeamentosPendentes(c.Context())
	h.dispatcher.AlertarEstoqueBaixo(c.Context())
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "alertas disparados"})
}
