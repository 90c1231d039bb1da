package mapeamento_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvrs/baixa-estoque-api/internal/application/mapeamento"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain"
	"github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"
	"github.com/lucasvrs/baixa-estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Testes da resolução e do auto-mapeamento. A propriedade central é o
// create-or-skip idempotente: dois callers observando "não existe" nunca
// geram duas linhas, e a violação de constraint única vira ja-existe.
// ──────────────────────────────────────────────────────────────────────────────

type repoFake struct {
	porSKU map[string]*entity.MapeamentoSKU

	// injeta a corrida: erro devolvido pelo próximo Criar
	erroCriar error
	criados   int
}

func novoRepoFake() *repoFake {
	return &repoFake{porSKU: map[string]*entity.MapeamentoSKU{}}
}

func (r *repoFake) BuscarPorSKUPedido(skuPedido string) (*entity.MapeamentoSKU, error) {
	return r.porSKU[skuPedido], nil
}

func (r *repoFake) Criar(m *entity.MapeamentoSKU) error {
	if r.erroCriar != nil {
		err := r.erroCriar
		r.erroCriar = nil
		return err
	}
	if _, existe := r.porSKU[m.SKUPedido]; existe {
		return domain.ErrDuplicado
	}
	r.porSKU[m.SKUPedido] = m
	r.criados++
	return nil
}

func (r *repoFake) Atualizar(m *entity.MapeamentoSKU) error {
	if _, existe := r.porSKU[m.SKUPedido]; !existe {
		return domain.ErrNotFound
	}
	r.porSKU[m.SKUPedido] = m
	return nil
}

func (r *repoFake) IncrementarPedidosAguardando(skuPedido string) error {
	m, existe := r.porSKU[skuPedido]
	if !existe {
		return domain.ErrNotFound
	}
	m.PedidosAguardando++
	return nil
}

func (r *repoFake) ListarPendentes(limit, offset int) ([]*entity.MapeamentoSKU, error) {
	var out []*entity.MapeamentoSKU
	for _, m := range r.porSKU {
		if m.Ativo && !m.Resolvido() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKUPedido < out[j].SKUPedido })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type alertadorFake struct{ chamadas int }

func (a *alertadorFake) AlertarMapeamentosPendentes(ctx context.Context) { a.chamadas++ }

func comResolvido(r *repoFake, skuPedido, skuInterno string, multiplicador int) {
	r.porSKU[skuPedido] = &entity.MapeamentoSKU{
		ID:              skuPedido,
		SKUPedido:       skuPedido,
		SKUKitResolvido: &skuInterno,
		Multiplicador:   multiplicador,
		Ativo:           true,
	}
}

// ── Resolver ─────────────────────────────────────────────────────────────────

func TestResolver_SKUDesconhecido(t *testing.T) {
	uc := mapeamento.NewUseCase(novoRepoFake(), nil, false, logger.Nop())

	_, err := uc.Resolver("NAO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrSemMapeamento)
}

func TestResolver_PendenteContaComoSemMapeamento(t *testing.T) {
	// Linha existe mas SKUKitResolvido ainda é nulo: pendente não resolve.
	repo := novoRepoFake()
	repo.porSKU["KIT-01"] = &entity.MapeamentoSKU{SKUPedido: "KIT-01", Ativo: true, Multiplicador: 1}
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	_, err := uc.Resolver("KIT-01")
	assert.ErrorIs(t, err, domain.ErrSemMapeamento)
}

func TestResolver_InativoContaComoSemMapeamento(t *testing.T) {
	repo := novoRepoFake()
	comResolvido(repo, "KIT-01", "UNIT-01", 3)
	repo.porSKU["KIT-01"].Ativo = false
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	_, err := uc.Resolver("KIT-01")
	assert.ErrorIs(t, err, domain.ErrSemMapeamento)
}

func TestResolver_Determinista(t *testing.T) {
	repo := novoRepoFake()
	comResolvido(repo, "KIT-01", "UNIT-01", 3)
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	r1, err := uc.Resolver("KIT-01")
	require.NoError(t, err)
	r2, err := uc.Resolver("KIT-01")
	require.NoError(t, err)

	assert.Equal(t, r1, r2, "mesma entrada, mesmo estado, mesmo resultado")
	assert.Equal(t, "UNIT-01", r1.SKUInterno)
	assert.Equal(t, 3, r1.Multiplicador)
}

func TestResolver_MultiplicadorSujoClampaParaUm(t *testing.T) {
	repo := novoRepoFake()
	comResolvido(repo, "KIT-01", "UNIT-01", 0)
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	r, err := uc.Resolver("KIT-01")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Multiplicador)
}

// ── GarantirMapeamento ───────────────────────────────────────────────────────

func TestGarantirMapeamento_CriaPendenteNaPrimeiraObservacao(t *testing.T) {
	repo := novoRepoFake()
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	resultado, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)
	assert.Equal(t, mapeamento.ResultadoCriado, resultado)

	m := repo.porSKU["NOVO-SKU"]
	require.NotNil(t, m)
	assert.Nil(t, m.SKUKitResolvido, "nasce pendente, sem tradução")
	assert.Equal(t, 1, m.Multiplicador)
	assert.True(t, m.Ativo)
	assert.Equal(t, entity.PrioridadeAlta, m.Prioridade,
		"origem pedido entra com prioridade alta: já há venda represada")
	assert.Equal(t, 0, m.PedidosAguardando)
}

func TestGarantirMapeamento_OrigemOperadorPrioridadeNormal(t *testing.T) {
	repo := novoRepoFake()
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	_, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemOperador)
	require.NoError(t, err)
	assert.Equal(t, entity.PrioridadeNormal, repo.porSKU["NOVO-SKU"].Prioridade)
}

func TestGarantirMapeamento_Idempotente(t *testing.T) {
	repo := novoRepoFake()
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	r1, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)
	r2, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)

	assert.Equal(t, mapeamento.ResultadoCriado, r1)
	assert.Equal(t, mapeamento.ResultadoJaExiste, r2)
	assert.Equal(t, 1, repo.criados, "segunda observação não cria linha nova")
}

func TestGarantirMapeamento_CorridaDeInsercao(t *testing.T) {
	// Dois callers veem "não existe" ao mesmo tempo; o segundo insert viola a
	// constraint única. A violação é resultado normal, não erro.
	repo := novoRepoFake()
	repo.erroCriar = domain.ErrDuplicado
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	resultado, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)
	assert.Equal(t, mapeamento.ResultadoJaExiste, resultado)
}

func TestGarantirMapeamento_SKUVazio(t *testing.T) {
	uc := mapeamento.NewUseCase(novoRepoFake(), nil, false, logger.Nop())

	_, err := uc.GarantirMapeamento(context.Background(), "", mapeamento.OrigemPedido)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestGarantirMapeamento_AlertaTempoReal(t *testing.T) {
	repo := novoRepoFake()
	alertador := &alertadorFake{}
	uc := mapeamento.NewUseCase(repo, alertador, true, logger.Nop())

	_, err := uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)
	assert.Equal(t, 1, alertador.chamadas, "modo tempo real dispara o alerta junto da criação")

	// ja-existe não dispara de novo.
	_, err = uc.GarantirMapeamento(context.Background(), "NOVO-SKU", mapeamento.OrigemPedido)
	require.NoError(t, err)
	assert.Equal(t, 1, alertador.chamadas)
}

// ── PreencherResolucao ───────────────────────────────────────────────────────

func TestPreencherResolucao_LeituraAposEscrita(t *testing.T) {
	repo := novoRepoFake()
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	_, err := uc.GarantirMapeamento(context.Background(), "KIT-01", mapeamento.OrigemPedido)
	require.NoError(t, err)

	err = uc.PreencherResolucao("KIT-01", "UNIT-01", "UNIT-01-AVULSO", 6, "caixa com 6")
	require.NoError(t, err)

	// A próxima resolução já enxerga a tradução nova.
	r, err := uc.Resolver("KIT-01")
	require.NoError(t, err)
	assert.Equal(t, "UNIT-01", r.SKUInterno)
	assert.Equal(t, "UNIT-01-AVULSO", r.SKUUnidade)
	assert.Equal(t, 6, r.Multiplicador)
}

func TestPreencherResolucao_NaoEncontrado(t *testing.T) {
	uc := mapeamento.NewUseCase(novoRepoFake(), nil, false, logger.Nop())

	err := uc.PreencherResolucao("NAO-EXISTE", "UNIT-01", "", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreencherResolucao_EntradaInvalida(t *testing.T) {
	uc := mapeamento.NewUseCase(novoRepoFake(), nil, false, logger.Nop())

	assert.ErrorIs(t, uc.PreencherResolucao("", "UNIT-01", "", 1, ""), domain.ErrEntradaInvalida)
	assert.ErrorIs(t, uc.PreencherResolucao("KIT-01", "", "", 1, ""), domain.ErrEntradaInvalida)
	assert.ErrorIs(t, uc.PreencherResolucao("KIT-01", "UNIT-01", "", 0, ""), domain.ErrEntradaInvalida)
}

// ── RegistrarAguardando / ListarPendentes ────────────────────────────────────

func TestRegistrarAguardando_IncrementaContador(t *testing.T) {
	repo := novoRepoFake()
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	_, err := uc.GarantirMapeamento(context.Background(), "KIT-01", mapeamento.OrigemPedido)
	require.NoError(t, err)

	require.NoError(t, uc.RegistrarAguardando("KIT-01"))
	require.NoError(t, uc.RegistrarAguardando("KIT-01"))
	assert.Equal(t, 2, repo.porSKU["KIT-01"].PedidosAguardando)
}

func TestListarPendentes_SoPendentesAtivos(t *testing.T) {
	repo := novoRepoFake()
	comResolvido(repo, "RESOLVIDO", "UNIT-01", 1)
	repo.porSKU["PENDENTE-A"] = &entity.MapeamentoSKU{SKUPedido: "PENDENTE-A", Ativo: true}
	repo.porSKU["PENDENTE-B"] = &entity.MapeamentoSKU{SKUPedido: "PENDENTE-B", Ativo: true}
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	pendentes, err := uc.ListarPendentes(0, 0) // limit <= 0 usa o default
	require.NoError(t, err)
	require.Len(t, pendentes, 2)
	assert.Equal(t, "PENDENTE-A", pendentes[0].SKUPedido)
	assert.Equal(t, "PENDENTE-B", pendentes[1].SKUPedido)
}

func TestListarPendentes_Paginacao(t *testing.T) {
	repo := novoRepoFake()
	repo.porSKU["PENDENTE-A"] = &entity.MapeamentoSKU{SKUPedido: "PENDENTE-A", Ativo: true}
	repo.porSKU["PENDENTE-B"] = &entity.MapeamentoSKU{SKUPedido: "PENDENTE-B", Ativo: true}
	repo.porSKU["PENDENTE-C"] = &entity.MapeamentoSKU{SKUPedido: "PENDENTE-C", Ativo: true}
	uc := mapeamento.NewUseCase(repo, nil, false, logger.Nop())

	pagina1, err := uc.ListarPendentes(2, 0)
	require.NoError(t, err)
	require.Len(t, pagina1, 2)
	assert.Equal(t, "PENDENTE-A", pagina1[0].SKUPedido)

	pagina2, err := uc.ListarPendentes(2, 2)
	require.NoError(t, err)
	require.Len(t, pagina2, 1)
	assert.Equal(t, "PENDENTE-C", pagina2[0].SKUPedido)

	// Offset negativo (dado sujo do caller) vale 0.
	pagina, err := uc.ListarPendentes(2, -5)
	require.NoError(t, err)
	assert.Len(t, pagina, 2)
}
