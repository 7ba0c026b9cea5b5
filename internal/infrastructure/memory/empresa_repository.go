package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo empresas en memoria.
type EmpresaRepo struct {
	s    *Store
	inTx bool
}

func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	return r.s.with(r.inTx, func(d *data) error {
		for _, x := range d.empresas {
			if x.UsuarioID == e.UsuarioID || x.NIT == e.NIT {
				return fmt.Errorf("insert empresa: %w", domain.ErrDuplicate)
			}
		}
		if _, ok := d.empresas[e.ID]; ok {
			return fmt.Errorf("insert empresa: %w", domain.ErrDuplicate)
		}
		d.empresas[e.ID] = e.Clone()
		return nil
	})
}

func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	var out *entity.Empresa
	err := r.s.with(r.inTx, func(d *data) error {
		out = d.empresas[id].Clone()
		return nil
	})
	return out, err
}

// GetForUpdate el lock del store ya serializa la transacción.
func (r *EmpresaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.GetByID(ctx, id)
}

func (r *EmpresaRepo) GetByUsuarioID(ctx context.Context, usuarioID string) (*entity.Empresa, error) {
	var out *entity.Empresa
	err := r.s.with(r.inTx, func(d *data) error {
		for _, x := range d.empresas {
			if x.UsuarioID == usuarioID {
				out = x.Clone()
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EmpresaRepo) UpdateEstado(ctx context.Context, e *entity.Empresa, esperado entity.EstadoEmpresa) (bool, error) {
	updated := false
	err := r.s.with(r.inTx, func(d *data) error {
		cur, ok := d.empresas[e.ID]
		if !ok || cur.Estado != esperado {
			return nil
		}
		c := e.Clone()
		cur.Estado = c.Estado
		cur.EstadoAnterior = c.EstadoAnterior
		cur.FechaCambioEstado = c.FechaCambioEstado
		cur.AprobadoPor = c.AprobadoPor
		cur.FechaAprobacion = c.FechaAprobacion
		cur.UpdatedAt = c.UpdatedAt
		updated = true
		return nil
	})
	return updated, err
}

func (r *EmpresaRepo) List(ctx context.Context, f repository.EmpresaFilter) ([]*entity.Empresa, int, error) {
	var out []*entity.Empresa
	total := 0
	err := r.s.with(r.inTx, func(d *data) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		all := make([]*entity.Empresa, 0, len(d.empresas))
		for _, x := range d.empresas {
			if f.Estado != nil && x.Estado != *f.Estado {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(x.RazonSocial), search) && !strings.HasPrefix(x.NIT, search) {
				continue
			}
			all = append(all, x)
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].ID < all[j].ID
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
		total = len(all)
		if f.Offset >= len(all) {
			return nil
		}
		end := len(all)
		if f.Limit > 0 && f.Offset+f.Limit < end {
			end = f.Offset + f.Limit
		}
		for _, x := range all[f.Offset:end] {
			out = append(out, x.Clone())
		}
		return nil
	})
	return out, total, err
}

func (r *EmpresaRepo) ContarPorEstado(ctx context.Context) (map[entity.EstadoEmpresa]int, error) {
	out := map[entity.EstadoEmpresa]int{}
	err := r.s.with(r.inTx, func(d *data) error {
		for _, x := range d.empresas {
			out[x.Estado]++
		}
		return nil
	})
	return out, err
}
