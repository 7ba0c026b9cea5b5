package repository

import (
	"context"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// EmpresaFilter filtros del listado del back-office.
type EmpresaFilter struct {
	Estado *entity.EstadoEmpresa
	Search string // razón social o NIT
	Limit  int
	Offset int
}

// EmpresaRepository puerto de persistencia para empresas pagadoras.
// Los Get devuelven (nil, nil) si no existe.
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByUsuarioID(ctx context.Context, usuarioID string) (*entity.Empresa, error)
	// GetForUpdate lee la fila bloqueándola hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Empresa, error)
	// UpdateEstado compara-e-intercambia: solo escribe si el estado almacenado sigue
	// siendo esperado. Devuelve false si otra transacción lo cambió.
	UpdateEstado(ctx context.Context, e *entity.Empresa, esperado entity.EstadoEmpresa) (bool, error)
	List(ctx context.Context, f EmpresaFilter) ([]*entity.Empresa, int, error)
	// ContarPorEstado número de empresas en cada estado; los estados sin empresas no aparecen.
	ContarPorEstado(ctx context.Context) (map[entity.EstadoEmpresa]int, error)
}
