package pedido

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/dto"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/estoque"
	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// FeedPedidos é o porto do feed externo de pedidos. O motor não pagina nem
// filtra por data; consome a página que o caller pedir.
type FeedPedidos interface {
	BuscarItens(ctx context.Context, pagina int) ([]entity.ItemPedido, error)
}

// UseCase enriquece as linhas do feed com mapeamento, estoque e status de
// elegibilidade, e roda o auto-mapeamento oportunista quando observa SKU
// desconhecido.
type UseCase struct {
	feed        FeedPedidos
	mapeamentos *mapeamento.UseCase
	produtoRepo repository.ProdutoRepository
	vendaRepo   repository.VendaRepository
	log         *logger.Logger
}

// NewUseCase constrói o caso de uso de enriquecimento.
func NewUseCase(
	feed FeedPedidos,
	mapeamentos *mapeamento.UseCase,
	produtoRepo repository.ProdutoRepository,
	vendaRepo repository.VendaRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		feed:        feed,
		mapeamentos: mapeamentos,
		produtoRepo: produtoRepo,
		vendaRepo:   vendaRepo,
		log:         log,
	}
}

// ListarEnriquecidos busca uma página do feed e classifica cada linha.
// Erros do auto-mapeamento são engolidos com log: enriquecimento é leitura,
// a provisão de mapeamento é oportunista e nunca derruba a listagem.
func (uc *UseCase) ListarEnriquecidos(ctx context.Context, pagina int) ([]dto.ItemPedidoDTO, error) {
	itens, err := uc.feed.BuscarItens(ctx, pagina)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ItemPedidoDTO, 0, len(itens))
	for _, item := range itens {
		out = append(out, uc.enriquecer(ctx, item))
	}
	return out, nil
}

func (uc *UseCase) enriquecer(ctx context.Context, item entity.ItemPedido) dto.ItemPedidoDTO {
	d := dto.ItemPedidoDTO{
		NumeroPedido:  item.NumeroPedido,
		SKUPedido:     item.SKUPedido,
		Quantidade:    item.Quantidade,
		PrecoUnitario: item.PrecoUnitario,
		Situacao:      item.Situacao,
		Cliente:       item.Cliente,
		DataPedido:    item.DataPedido,
	}

	chave := entity.ChaveIdempotencia(item.NumeroPedido, item.SKUPedido)
	jaProcessado := false
	if venda, err := uc.vendaRepo.BuscarPorChave(chave); err != nil {
		uc.log.Warn().Str("chave", chave).Err(err).Msg("consulta de idempotencia no enriquecimento")
	} else if venda != nil {
		jaProcessado = true
	}

	mapeado, err := uc.mapeamentos.Resolver(item.SKUPedido)
	if err != nil && !errors.Is(err, domain.ErrSemMapeamento) {
		uc.log.Warn().Str("sku_pedido", item.SKUPedido).Err(err).Msg("resolução de mapeamento no enriquecimento")
	}
	if mapeado == nil {
		uc.provisionarMapeamento(ctx, item.SKUPedido)
	} else {
		d.SKUResolvido = mapeado.SKUInterno
		d.Multiplicador = mapeado.Multiplicador
	}

	estoqueAtual := decimal.Zero
	if mapeado != nil {
		if produto, err := uc.produtoRepo.BuscarPorSKU(mapeado.SKUInterno); err != nil {
			uc.log.Warn().Str("sku", mapeado.SKUInterno).Err(err).Msg("consulta de estoque no enriquecimento")
		} else if produto != nil {
			estoqueAtual = produto.Quantidade
		}
	}
	d.EstoqueDisponivel = estoqueAtual

	d.Status = estoque.Classificar(item, mapeado, estoqueAtual, jaProcessado)
	d.Elegivel = estoque.ElegivelParaBaixa(item, d.Status)
	return d
}

// provisionarMapeamento roda o auto-mapeamento quando o SKU do pedido não tem
// tradução: cria pendente na primeira observação e incrementa o contador de
// pedidos aguardando nas seguintes.
func (uc *UseCase) provisionarMapeamento(ctx context.Context, skuPedido string) {
	resultado, err := uc.mapeamentos.GarantirMapeamento(ctx, skuPedido, mapeamento.OrigemPedido)
	if err != nil {
		uc.log.Warn().Str("sku_pedido", skuPedido).Err(err).Msg("auto-mapeamento falhou")
		return
	}
	if resultado == mapeamento.ResultadoJaExiste {
		if err := uc.mapeamentos.RegistrarAguardando(skuPedido); err != nil {
			uc.log.Warn().Str("sku_pedido", skuPedido).Err(err).Msg("incremento de pedidos aguardando falhou")
		}
	}
}
