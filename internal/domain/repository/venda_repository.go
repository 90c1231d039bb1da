package repository

import "github.com/lucasvrs/baixa-estoque-api/internal/domain/entity"

// VendaRepository define o porto da âncora de idempotência da baixa.
type VendaRepository interface {
	// BuscarPorChave retorna nil, nil quando a chave ainda não foi baixada.
	BuscarPorChave(chave string) (*entity.VendaBaixada, error)
	// Criar insere o registro terminal. Retorna domain.ErrDuplicado quando a
	// constraint única da chave rejeitar (linha já baixada por outro lote).
	Criar(v *entity.VendaBaixada) error
}
