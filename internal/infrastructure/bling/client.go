// Package bling integra com o feed externo de pedidos (ERP). O motor não
// conhece a paginação nem o filtro de datas do feed; este cliente só busca a
// página que o caller pedir e valida o formato de cada linha na fronteira.
package bling

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/pedido"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/pkg/config"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

var _ pedido.FeedPedidos = (*Client)(nil)

// Client consome o endpoint de itens de pedido do ERP via HTTP.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
	log      *logger.Logger
}

// NewClient constrói o cliente do feed.
func NewClient(cfg config.PedidosConfig, log *logger.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey)
	return &Client{
		http:     http,
		validate: validator.New(),
		log:      log,
	}
}

// itemFeed é o payload cru de uma linha do feed: campos fracos e opcionais,
// validados aqui antes de virarem entidade. Registro malformado é
// quarentenado com log, nunca passa adiante.
type itemFeed struct {
	NumeroPedido  string          `json:"numero_pedido" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Situacao      string          `json:"situacao" validate:"required"`
	Cliente       string          `json:"cliente"`
	DataPedido    time.Time       `json:"data_pedido"`
}

type paginaFeed struct {
	Itens []itemFeed `json:"itens"`
}

// BuscarItens busca uma página de linhas de pedido e devolve só as válidas.
func (c *Client) BuscarItens(ctx context.Context, pagina int) ([]entity.ItemPedido, error) {
	if pagina < 1 {
		pagina = 1
	}
	var body paginaFeed
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("pagina", strconv.Itoa(pagina)).
		SetResult(&body).
		Get("/pedidos/itens")
	if err != nil {
		return nil, fmt.Errorf("buscar itens do feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed de pedidos respondeu %s", resp.Status())
	}

	itens := make([]entity.ItemPedido, 0, len(body.Itens))
	for _, raw := range body.Itens {
		if err := c.validarItem(raw); err != nil {
			c.log.Warn().
				Str("pedido", raw.NumeroPedido).
				Str("sku", raw.SKU).
				Err(err).
				Msg("item do feed quarentenado")
			continue
		}
		itens = append(itens, entity.ItemPedido{
			NumeroPedido:  raw.NumeroPedido,
			SKUPedido:     raw.SKU,
			Quantidade:    raw.Quantidade,
			PrecoUnitario: raw.PrecoUnitario,
			Situacao:      raw.Situacao,
			Cliente:       raw.Cliente,
			DataPedido:    raw.DataPedido,
		})
	}
	return itens, nil
}

func (c *Client) validarItem(raw itemFeed) error {
	if err := c.validate.Struct(raw); err != nil {
		return err
	}
	// Quantidade é decimal; o validator não compara, então a regra > 0 é
	// aplicada à mão.
	if raw.Quantidade.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("quantidade deve ser maior que zero")
	}
	return nil
}
