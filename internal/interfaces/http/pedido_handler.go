package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/dto"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/pedido"
)

// PedidoHandler atende as requisições de listagem enriquecida de pedidos.
type PedidoHandler struct {
	uc *pedido.UseCase
}

// NewPedidoHandler constrói o handler.
func NewPedidoHandler(uc *pedido.UseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar itens de pedido enriquecidos
// @Description  Busca uma página do feed externo e devolve cada linha com SKU
//
//	resolvido, estoque disponível e status de elegibilidade.
//
// @Tags         pedidos
// @Produce      json
// @Param        pagina  query  int  false  "Página do feed (default 1)"
// @Success      200  {array}   dto.ItemPedidoDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) Listar(c *fiber.Ctx) error {
	pagina := c.QueryInt("pagina", 1)
	itens, err := h.uc.ListarEnriquecidos(c.Context(), pagina)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "FEED_INDISPONIVEL",
			Message: "feed de pedidos indisponível: " + err.Error(),
		})
	}
	return c.JSON(itens)
}
