package backoffice

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// CrearComentario agrega un comentario interno. Solo lectura/escritura de admins.
func (uc *UseCase) CrearComentario(ctx context.Context, adminID, empresaID string, in dto.CrearComentarioRequest) (*dto.ComentarioResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	texto := strings.TrimSpace(in.Comentario)
	if texto == "" || utf8.RuneCountInString(texto) > maxComentario {
		return nil, domain.InvalidInput("COMENTARIO_INVALIDO", "El comentario debe tener entre 1 y 5000 caracteres")
	}
	e, err := uc.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	c := &entity.ComentarioInterno{
		ID:         uc.newID(),
		EmpresaID:  e.ID,
		UsuarioID:  adminID,
		Comentario: texto,
		CreatedAt:  uc.now().UTC(),
	}
	if err := uc.repos.Comentarios.Create(ctx, c); err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := dto.FromComentario(c)
	return &out, nil
}

// ListarComentarios comentarios de la empresa, el más reciente primero.
func (uc *UseCase) ListarComentarios(ctx context.Context, adminID, empresaID string) ([]dto.ComentarioResponse, error) {
	if err := uc.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	e, err := uc.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	cs, err := uc.repos.Comentarios.ListByEmpresa(ctx, e.ID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	out := make([]dto.ComentarioResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.FromComentario(c))
	}
	return out, nil
}
