// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa con STORE_DRIVER=memory y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type data struct {
	empresas    map[string]*entity.Empresa
	documentos  map[string]*entity.Documento
	usuarios    map[string]*entity.Usuario
	historial   []*entity.HistorialEstado
	comentarios []*entity.ComentarioInterno
	sarlaft     []*entity.ValidacionSarlaft
}

func newData() *data {
	return &data{
		empresas:   map[string]*entity.Empresa{},
		documentos: map[string]*entity.Documento{},
		usuarios:   map[string]*entity.Usuario{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.empresas {
		c.empresas[k] = v.Clone()
	}
	for k, v := range d.documentos {
		c.documentos[k] = v.Clone()
	}
	for k, v := range d.usuarios {
		u := *v
		c.usuarios[k] = &u
	}
	c.historial = append(c.historial, d.historial...)
	c.comentarios = append(c.comentarios, d.comentarios...)
	c.sarlaft = append(c.sarlaft, d.sarlaft...)
	return c
}

// Store almacenamiento en memoria. Las transacciones se serializan con un mutex
// y se revierten restaurando una copia del estado previo.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Repos repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) ports.Repos {
	return ports.Repos{
		Empresas:    &EmpresaRepo{s: s, inTx: inTx},
		Documentos:  &DocumentoRepo{s: s, inTx: inTx},
		Historial:   &HistorialRepo{s: s, inTx: inTx},
		Comentarios: &ComentarioRepo{s: s, inTx: inTx},
		Usuarios:    &UsuarioRepo{s: s, inTx: inTx},
		Sarlaft:     &SarlaftRepo{s: s, inTx: inTx},
	}
}

// RunInTx ejecuta fn con el store bloqueado; si fn falla se restaura el estado.
func (s *Store) RunInTx(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	if err := fn(s.repos(true)); err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

// Ping siempre disponible.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// SeedUsuario registra un usuario con rol; útil en desarrollo y pruebas.
func (s *Store) SeedUsuario(u entity.Usuario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.usuarios[u.ID] = &u
}

func (s *Store) with(inTx bool, fn func(d *data) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}
