package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrSemMapeamento        = errors.New("sku sem mapeamento ativo")
	ErrProdutoNaoEncontrado = errors.New("produto não encontrado no estoque")
	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrJaProcessado         = errors.New("item já processado")
)
