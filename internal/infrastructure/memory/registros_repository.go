package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var (
	_ repository.HistorialRepository  = (*HistorialRepo)(nil)
	_ repository.ComentarioRepository = (*ComentarioRepo)(nil)
	_ repository.UsuarioRepository    = (*UsuarioRepo)(nil)
	_ repository.SarlaftRepository    = (*SarlaftRepo)(nil)
)

// HistorialRepo historial de estados, solo inserción.
type HistorialRepo struct {
	s    *Store
	inTx bool
}

func (r *HistorialRepo) Append(ctx context.Context, h *entity.HistorialEstado) error {
	return r.s.with(r.inTx, func(d *data) error {
		c := *h
		d.historial = append(d.historial, &c)
		return nil
	})
}

func (r *HistorialRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.HistorialEstado, error) {
	var out []*entity.HistorialEstado
	err := r.s.with(r.inTx, func(d *data) error {
		// recorrido inverso: la más reciente primero, estable ante timestamps iguales
		for i := len(d.historial) - 1; i >= 0; i-- {
			if h := d.historial[i]; h.EmpresaID == empresaID {
				c := *h
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// ComentarioRepo comentarios internos.
type ComentarioRepo struct {
	s    *Store
	inTx bool
}

func (r *ComentarioRepo) Create(ctx context.Context, c *entity.ComentarioInterno) error {
	return r.s.with(r.inTx, func(d *data) error {
		x := *c
		d.comentarios = append(d.comentarios, &x)
		return nil
	})
}

func (r *ComentarioRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ComentarioInterno, error) {
	var out []*entity.ComentarioInterno
	err := r.s.with(r.inTx, func(d *data) error {
		for i := len(d.comentarios) - 1; i >= 0; i-- {
			if c := d.comentarios[i]; c.EmpresaID == empresaID {
				x := *c
				out = append(out, &x)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// UsuarioRepo usuarios locales.
type UsuarioRepo struct {
	s    *Store
	inTx bool
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	var out *entity.Usuario
	err := r.s.with(r.inTx, func(d *data) error {
		if u, ok := d.usuarios[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *UsuarioRepo) Ensure(ctx context.Context, u *entity.Usuario) error {
	return r.s.with(r.inTx, func(d *data) error {
		if _, ok := d.usuarios[u.ID]; ok {
			return nil
		}
		c := *u
		d.usuarios[u.ID] = &c
		return nil
	})
}

// SarlaftRepo validaciones SARLAFT.
type SarlaftRepo struct {
	s    *Store
	inTx bool
}

func (r *SarlaftRepo) Create(ctx context.Context, v *entity.ValidacionSarlaft) error {
	return r.s.with(r.inTx, func(d *data) error {
		c := *v
		d.sarlaft = append(d.sarlaft, &c)
		return nil
	})
}

func (r *SarlaftRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ValidacionSarlaft, error) {
	var out []*entity.ValidacionSarlaft
	err := r.s.with(r.inTx, func(d *data) error {
		for i := len(d.sarlaft) - 1; i >= 0; i-- {
			if v := d.sarlaft[i]; v.EmpresaID == empresaID {
				c := *v
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}
