package ports

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Empresas    repository.EmpresaRepository
	Documentos  repository.DocumentoRepository
	Historial   repository.HistorialRepository
	Comentarios repository.ComentarioRepository
	Usuarios    repository.UsuarioRepository
	Sarlaft     repository.SarlaftRepository
}

// TxRunner ejecuta fn en una transacción: Commit si fn retorna nil, Rollback en otro caso.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(r Repos) error) error
}
