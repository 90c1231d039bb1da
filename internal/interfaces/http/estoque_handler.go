package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/dto"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
)

// Deadline total de um lote; itens não atingidos entram no resultado como
// não processados.
const deadlineLote = 2 * time.Minute

// EstoqueHandler atende a ação manual de baixa de estoque em lote.
type EstoqueHandler struct {
	uc *estoque.BaixaUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.BaixaUseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// BaixaLote godoc
// @Summary      Baixar estoque dos itens selecionados
// @Description  Processa o lote item a item (continue-on-error) e devolve o
//
//	resultado estruturado: sucessos com antes/depois, erros com motivo e
//	contagem de itens já baixados (ignorados). Sucesso parcial volta 200
//	com o detalhe por item; o caller deve reconsultar o estoque depois.
//
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BaixaLoteRequest  true  "itens selecionados para baixa"
// @Success      200   {object}  estoque.ResultadoBaixa
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estoque/baixa-lote [post]
func (h *EstoqueHandler) BaixaLote(c *fiber.Ctx) error {
	var in dto.BaixaLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.Itens) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote vazio"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), deadlineLote)
	defer cancel()

	res := h.uc.ProcessarLote(ctx, in.ParaEntidades())
	return c.JSON(res)
}
