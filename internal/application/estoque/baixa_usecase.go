package estoque

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/repository"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// SucessoItem é o resultado de um item baixado com sucesso.
type SucessoItem struct {
	NumeroPedido      string          `json:"numero_pedido"`
	SKUPedido         string          `json:"sku_pedido"`
	SKUResolvido      string          `json:"sku_resolvido"`
	QuantidadeAntes   decimal.Decimal `json:"quantidade_antes"`
	QuantidadeDepois  decimal.Decimal `json:"quantidade_depois"`
	QuantidadeBaixada decimal.Decimal `json:"quantidade_baixada"`
}

// ErroItem é o resultado de um item que falhou dentro do lote.
type ErroItem struct {
	NumeroPedido string `json:"numero_pedido"`
	SKUPedido    string `json:"sku_pedido"`
	Motivo       string `json:"motivo"`
}

// ResultadoBaixa agrega o desfecho por item de um lote. Construído novo a
// cada invocação; não é persistido. Itens já baixados antes do lote contam
// como ignorados, nem sucesso nem falha.
type ResultadoBaixa struct {
	Sucessos  []SucessoItem `json:"sucessos"`
	Erros     []ErroItem    `json:"erros"`
	Ignorados int           `json:"ignorados"`
}

// TotalSucesso devolve a contagem de itens baixados.
func (r *ResultadoBaixa) TotalSucesso() int { return len(r.Sucessos) }

// BaixaUseCase orquestra a baixa de estoque em lote: por item, checagem de
// idempotência, re-resolução do mapeamento, débito condicional e escrita dos
// dois livros (movimento + venda baixada), tudo atômico por item. Falha de um
// item nunca aborta o lote. O componente é stateless por chamada; o caller é
// quem garante um lote em voo por sessão via flag processando.
type BaixaUseCase struct {
	txRunner  TxRunner
	vendaRepo repository.VendaRepository
	log       *logger.Logger
}

// NewBaixaUseCase constrói o caso de uso. vendaRepo é o repositório fora de
// transação usado na checagem prévia de idempotência.
func NewBaixaUseCase(txRunner TxRunner, vendaRepo repository.VendaRepository, log *logger.Logger) *BaixaUseCase {
	return &BaixaUseCase{txRunner: txRunner, vendaRepo: vendaRepo, log: log}
}

// ProcessarLote processa os itens na ordem recebida, continue-on-error.
// O filtro de elegibilidade do caller é reaplicado defensivamente aqui
// (idempotência, situação do pedido, mapeamento e saldo), então um lote
// montado com dados velhos ou manipulados não fura as checagens. Quando o
// deadline do ctx expira, os itens restantes entram no resultado como não
// processados em vez de sumirem em silêncio.
func (uc *BaixaUseCase) ProcessarLote(ctx context.Context, itens []entity.ItemPedido) *ResultadoBaixa {
	res := &ResultadoBaixa{}
	for _, item := range itens {
		if ctx.Err() != nil {
			res.Erros = append(res.Erros, ErroItem{
				NumeroPedido: item.NumeroPedido,
				SKUPedido:    item.SKUPedido,
				Motivo:       "nao processado: tempo esgotado",
			})
			continue
		}
		uc.processarItem(ctx, item, res)
	}

	uc.log.Info().
		Int("itens", len(itens)).
		Int("sucessos", res.TotalSucesso()).
		Int("erros", len(res.Erros)).
		Int("ignorados", res.Ignorados).
		Msg("lote de baixa concluído")
	return res
}

func (uc *BaixaUseCase) processarItem(ctx context.Context, item entity.ItemPedido, res *ResultadoBaixa) {
	if !entity.SituacaoPermiteBaixa(item.Situacao) {
		res.Erros = append(res.Erros, ErroItem{
			NumeroPedido: item.NumeroPedido,
			SKUPedido:    item.SKUPedido,
			Motivo:       fmt.Sprintf("situacao %q nao permite baixa", item.Situacao),
		})
		return
	}

	chave := entity.ChaveIdempotencia(item.NumeroPedido, item.SKUPedido)
	existente, err := uc.vendaRepo.BuscarPorChave(chave)
	if err != nil {
		res.Erros = append(res.Erros, ErroItem{
			NumeroPedido: item.NumeroPedido,
			SKUPedido:    item.SKUPedido,
			Motivo:       "consulta de idempotencia: " + err.Error(),
		})
		return
	}
	if existente != nil {
		// Trabalho já feito é no-op, não conta como sucesso nem como falha.
		res.Ignorados++
		return
	}

	var sucesso SucessoItem
	err = uc.txRunner.Run(ctx, func(
		vendas repository.VendaRepository,
		produtos repository.ProdutoRepository,
		movimentos repository.MovimentoRepository,
		mapeamentos repository.MapeamentoRepository,
	) error {
		// Re-resolve na hora do débito; o valor enriquecido do caller pode
		// estar velho se um operador alterou o mapeamento no meio do caminho.
		mapeado, err := mapeamento.ResolverComRepo(mapeamentos, item.SKUPedido)
		if err != nil {
			return err
		}
		produto, err := produtos.BuscarPorSKU(mapeado.SKUInterno)
		if err != nil {
			return err
		}
		if produto == nil {
			return domain.ErrProdutoNaoEncontrado
		}

		necessario := QuantidadeNecessaria(mapeado.Multiplicador, item.Quantidade)
		nova, ok, err := produtos.DebitarSeDisponivel(produto.SKU, necessario)
		if err != nil {
			return fmt.Errorf("debitar estoque: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: disponivel %s, necessario %s",
				domain.ErrEstoqueInsuficiente, produto.Quantidade.String(), necessario.String())
		}
		antes := nova.Add(necessario)

		now := time.Now()
		mov := &entity.MovimentoEstoque{
			ID:               uuid.New().String(),
			ProdutoID:        produto.ID,
			SKU:              produto.SKU,
			Direcao:          entity.MovimentoSaida,
			QuantidadeAntes:  antes,
			QuantidadeDepois: nova,
			QuantidadeMovida: necessario,
			Motivo:           fmt.Sprintf("baixa automatica - pedido %s", item.NumeroPedido),
			CriadoEm:         now,
		}
		if err := movimentos.Criar(mov); err != nil {
			return fmt.Errorf("registrar movimento: %w", err)
		}

		// Preço unitário rateado pelo multiplicador, preservando o total da
		// linha. Quando multiplicador != 1 esse rateio assume proporção
		// linear do preço do kit, sem conferir preço unitário autoritativo.
		precoUnitario := item.PrecoUnitario
		if mapeado.Multiplicador > 1 {
			precoUnitario = item.PrecoUnitario.Div(decimal.NewFromInt(int64(mapeado.Multiplicador)))
		}
		venda := &entity.VendaBaixada{
			ID:            uuid.New().String(),
			Chave:         chave,
			NumeroPedido:  item.NumeroPedido,
			SKUPedido:     item.SKUPedido,
			SKUResolvido:  produto.SKU,
			Quantidade:    necessario,
			PrecoUnitario: precoUnitario,
			Total:         precoUnitario.Mul(necessario),
			Cliente:       item.Cliente,
			DataPedido:    item.DataPedido,
			Status:        entity.StatusStockBaixado,
			CriadoEm:      now,
		}
		if err := vendas.Criar(venda); err != nil {
			if errors.Is(err, domain.ErrDuplicado) {
				// Outro lote baixou a mesma chave entre a checagem e o
				// commit; a transação inteira reverte e o item vira no-op.
				return domain.ErrJaProcessado
			}
			// A venda baixada é a âncora de idempotência: falha aqui é o
			// sinal autoritativo de falha do item.
			return fmt.Errorf("registrar venda baixada: %w", err)
		}

		sucesso = SucessoItem{
			NumeroPedido:      item.NumeroPedido,
			SKUPedido:         item.SKUPedido,
			SKUResolvido:      produto.SKU,
			QuantidadeAntes:   antes,
			QuantidadeDepois:  nova,
			QuantidadeBaixada: necessario,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrJaProcessado) {
			res.Ignorados++
			return
		}
		uc.log.Warn().
			Str("pedido", item.NumeroPedido).
			Str("sku_pedido", item.SKUPedido).
			Err(err).
			Msg("item de lote falhou")
		res.Erros = append(res.Erros, ErroItem{
			NumeroPedido: item.NumeroPedido,
			SKUPedido:    item.SKUPedido,
			Motivo:       motivoDoErro(err),
		})
		return
	}
	res.Sucessos = append(res.Sucessos, sucesso)
}

// motivoDoErro traduz os erros de domínio para os motivos expostos no
// resultado do lote.
func motivoDoErro(err error) string {
	switch {
	case errors.Is(err, domain.ErrSemMapeamento):
		return "sku sem mapeamento ativo"
	case errors.Is(err, domain.ErrProdutoNaoEncontrado):
		return "produto nao encontrado no estoque"
	default:
		return err.Error()
	}
}
