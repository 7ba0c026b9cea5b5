package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo documentos en memoria; respeta el índice único parcial de versión vigente.
type DocumentoRepo struct {
	s    *Store
	inTx bool
}

func (r *DocumentoRepo) Create(ctx context.Context, doc *entity.Documento) error {
	return r.s.with(r.inTx, func(d *data) error {
		if _, ok := d.empresas[doc.EmpresaID]; !ok {
			return fmt.Errorf("insert documento: empresa %s inexistente", doc.EmpresaID)
		}
		if _, ok := d.documentos[doc.ID]; ok {
			return fmt.Errorf("insert documento: %w", domain.ErrDuplicate)
		}
		if doc.EsVersionActual && vigente(d, doc.EmpresaID, doc.Tipo) != nil {
			return fmt.Errorf("insert documento: %w", domain.ErrDuplicate)
		}
		d.documentos[doc.ID] = doc.Clone()
		return nil
	})
}

func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	var out *entity.Documento
	err := r.s.with(r.inTx, func(d *data) error {
		out = d.documentos[id].Clone()
		return nil
	})
	return out, err
}

func (r *DocumentoRepo) GetVigente(ctx context.Context, empresaID string, tipo entity.TipoDocumento) (*entity.Documento, error) {
	var out *entity.Documento
	err := r.s.with(r.inTx, func(d *data) error {
		out = vigente(d, empresaID, tipo).Clone()
		return nil
	})
	return out, err
}

func (r *DocumentoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Documento, error) {
	var out []*entity.Documento
	err := r.s.with(r.inTx, func(d *data) error {
		for _, x := range d.documentos {
			if x.EmpresaID == empresaID {
				out = append(out, x.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *DocumentoRepo) MarcarNoVigente(ctx context.Context, id string) error {
	return r.s.with(r.inTx, func(d *data) error {
		x, ok := d.documentos[id]
		if !ok {
			return fmt.Errorf("update documento %s: %w", id, domain.ErrNotFound)
		}
		x.EsVersionActual = false
		return nil
	})
}

func (r *DocumentoRepo) Confirmar(ctx context.Context, doc *entity.Documento) error {
	return r.s.with(r.inTx, func(d *data) error {
		x, ok := d.documentos[doc.ID]
		if !ok {
			return fmt.Errorf("update documento %s: %w", doc.ID, domain.ErrNotFound)
		}
		if v := vigente(d, x.EmpresaID, x.Tipo); v != nil && v.ID != x.ID {
			return fmt.Errorf("update documento: %w", domain.ErrDuplicate)
		}
		c := doc.Clone()
		x.EsVersionActual = true
		x.EstadoCarga = entity.CargaConfirmada
		x.ReemplazaA = c.ReemplazaA
		x.ConfirmadoAt = c.ConfirmadoAt
		x.TamanoBytes = doc.TamanoBytes
		x.UpdatedAt = doc.UpdatedAt
		return nil
	})
}

func vigente(d *data, empresaID string, tipo entity.TipoDocumento) *entity.Documento {
	for _, x := range d.documentos {
		if x.EmpresaID == empresaID && x.Tipo == tipo && x.EsVersionActual {
			return x
		}
	}
	return nil
}
