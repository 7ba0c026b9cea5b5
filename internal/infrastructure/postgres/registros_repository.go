package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var (
	_ repository.HistorialRepository  = (*HistorialRepo)(nil)
	_ repository.ComentarioRepository = (*ComentarioRepo)(nil)
	_ repository.UsuarioRepository    = (*UsuarioRepo)(nil)
	_ repository.SarlaftRepository    = (*SarlaftRepo)(nil)
)

// ── Historial ─────────────────────────────────────────────────────────────────

// HistorialRepo solo inserción; un trigger rechaza UPDATE y DELETE.
type HistorialRepo struct {
	q Querier
}

func NewHistorialRepository(q Querier) *HistorialRepo {
	return &HistorialRepo{q: q}
}

func (r *HistorialRepo) Append(ctx context.Context, h *entity.HistorialEstado) error {
	query := `
		INSERT INTO historial_estados (id, empresa_id, estado_anterior, estado_nuevo, cambiado_por, motivo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.EmpresaID, h.EstadoAnterior, h.EstadoNuevo, h.CambiadoPor, h.Motivo, h.CreatedAt)
	if err != nil {
		return writeErr("insert historial", err)
	}
	return nil
}

// ListByEmpresa más reciente primero; seq desempata timestamps iguales.
func (r *HistorialRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.HistorialEstado, error) {
	if !validID(empresaID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, empresa_id, estado_anterior, estado_nuevo, cambiado_por, motivo, created_at
		FROM historial_estados WHERE empresa_id = $1
		ORDER BY created_at DESC, seq DESC`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()

	var out []*entity.HistorialEstado
	for rows.Next() {
		var h entity.HistorialEstado
		if err := rows.Scan(&h.ID, &h.EmpresaID, &h.EstadoAnterior, &h.EstadoNuevo,
			&h.CambiadoPor, &h.Motivo, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

// ── Comentarios ───────────────────────────────────────────────────────────────

type ComentarioRepo struct {
	q Querier
}

func NewComentarioRepository(q Querier) *ComentarioRepo {
	return &ComentarioRepo{q: q}
}

func (r *ComentarioRepo) Create(ctx context.Context, c *entity.ComentarioInterno) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO comentarios_internos (id, empresa_id, usuario_id, comentario, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.EmpresaID, c.UsuarioID, c.Comentario, c.CreatedAt)
	if err != nil {
		return writeErr("insert comentario", err)
	}
	return nil
}

func (r *ComentarioRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ComentarioInterno, error) {
	if !validID(empresaID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, empresa_id, usuario_id, comentario, created_at
		FROM comentarios_internos WHERE empresa_id = $1
		ORDER BY created_at DESC, seq DESC`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.ComentarioInterno
	for rows.Next() {
		var c entity.ComentarioInterno
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.UsuarioID, &c.Comentario, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type UsuarioRepo struct {
	q Querier
}

func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(ctx, `SELECT id, email, rol, created_at, updated_at FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Rol, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// Ensure no toca el rol de un usuario existente.
func (r *UsuarioRepo) Ensure(ctx context.Context, u *entity.Usuario) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO usuarios (id, email, rol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		u.ID, u.Email, u.Rol, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return writeErr("ensure usuario", err)
	}
	return nil
}

// ── SARLAFT ───────────────────────────────────────────────────────────────────

type SarlaftRepo struct {
	q Querier
}

func NewSarlaftRepository(q Querier) *SarlaftRepo {
	return &SarlaftRepo{q: q}
}

func (r *SarlaftRepo) Create(ctx context.Context, v *entity.ValidacionSarlaft) error {
	resultado := string(v.Resultado)
	if resultado == "" {
		resultado = "{}"
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO validaciones_sarlaft (id, empresa_id, scope, nombres, documento, tipo_documento,
			provider_user_id, ip_address, force_refresh, provider_status, clasificacion, resultado,
			consultado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14)`,
		v.ID, v.EmpresaID, v.Scope, v.Nombres, v.Documento, v.TipoDocumento,
		v.ProviderUserID, v.IPAddress, v.ForceRefresh, v.ProviderStatus, v.Clasificacion, resultado,
		v.ConsultadoPor, v.CreatedAt)
	if err != nil {
		return writeErr("insert validacion sarlaft", err)
	}
	return nil
}

func (r *SarlaftRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ValidacionSarlaft, error) {
	if !validID(empresaID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, empresa_id, scope, nombres, documento, tipo_documento, provider_user_id,
		       ip_address, force_refresh, provider_status, clasificacion, resultado, consultado_por, created_at
		FROM validaciones_sarlaft WHERE empresa_id = $1
		ORDER BY created_at DESC, seq DESC`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list validaciones sarlaft: %w", err)
	}
	defer rows.Close()

	var out []*entity.ValidacionSarlaft
	for rows.Next() {
		var v entity.ValidacionSarlaft
		var resultado []byte
		if err := rows.Scan(&v.ID, &v.EmpresaID, &v.Scope, &v.Nombres, &v.Documento, &v.TipoDocumento,
			&v.ProviderUserID, &v.IPAddress, &v.ForceRefresh, &v.ProviderStatus, &v.Clasificacion,
			&resultado, &v.ConsultadoPor, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan validacion sarlaft: %w", err)
		}
		v.Resultado = resultado
		out = append(out, &v)
	}
	return out, rows.Err()
}
