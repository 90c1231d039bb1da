package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/dto"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
)

// MapeamentoHandler atende as requisições da tabela de tradução de SKUs.
type MapeamentoHandler struct {
	uc *mapeamento.UseCase
}

// NewMapeamentoHandler constrói o handler.
func NewMapeamentoHandler(uc *mapeamento.UseCase) *MapeamentoHandler {
	return &MapeamentoHandler{uc: uc}
}

// ListarPendentes godoc
// @Summary      Listar mapeamentos pendentes
// @Description  SKUs sem tradução, mais urgentes primeiro (prioridade e
//
//	pedidos aguardando).
//
// @Tags         mapeamentos
// @Produce      json
// @Param        limit   query  int  false  "Máximo de linhas por página (default 20, máximo 100)"
// @Param        offset  query  int  false  "Deslocamento da página (default 0)"
// @Success      200  {array}   dto.MapeamentoPendenteDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/mapeamentos/pendentes [get]
func (h *MapeamentoHandler) ListarPendentes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()
	pendentes, err := h.uc.ListarPendentes(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MapeamentoPendenteDTO, 0, len(pendentes))
	for _, m := range pendentes {
		out = append(out, dto.NovoMapeamentoPendenteDTO(m))
	}
	return c.JSON(out)
}

// Garantir godoc
// @Summary      Garantir mapeamento para um SKU
// @Description  Cria o mapeamento pendente se não existir (idempotente por
//
//	SKU); devolve criado ou ja-existe.
//
// @Tags         mapeamentos
// @Produce      json
// @Param        sku  path  string  true  "SKU como aparece no pedido"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/mapeamentos/{sku}/garantir [post]
func (h *MapeamentoHandler) Garantir(c *fiber.Ctx) error {
	sku := c.Params("sku")
	resultado, err := h.uc.GarantirMapeamento(c.Context(), sku, mapeamento.OrigemOperador)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"resultado": resultado})
}

// Preencher godoc
// @Summary      Preencher a tradução de um mapeamento
// @Description  Grava o SKU interno do kit e o multiplicador; a próxima
//
//	resolução já enxerga o valor novo.
//
// @Tags         mapeamentos
// @Accept       json
// @Produce      json
// @Param        sku   path  string                          true  "SKU do pedido"
// @Param        body  body  dto.PreencherMapeamentoRequest  true  "sku_kit, multiplicador (>= 1)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/mapeamentos/{sku} [put]
func (h *MapeamentoHandler) Preencher(c *fiber.Ctx) error {
	sku := c.Params("sku")
	var in dto.PreencherMapeamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Multiplicador == 0 {
		in.Multiplicador = 1
	}
	err := h.uc.PreencherResolucao(sku, in.SKUKit, in.SKUUnidade, in.Multiplicador, in.Observacoes)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mapeamento não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "mapeamento atualizado"})
}
