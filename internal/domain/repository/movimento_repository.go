package repository

import "github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"

// MovimentoRepository define o porto append-only do livro de movimentos.
// Este núcleo só insere; atualização e remoção não existem aqui.
type MovimentoRepository interface {
	Criar(mov *entity.MovimentoEstoque) error
}
