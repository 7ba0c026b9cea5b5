package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

const documentoColumns = `
	id, empresa_id, tipo, s3_bucket, s3_key, nombre_original, mime_type, tamano_bytes,
	estado_carga, es_version_actual, reemplaza_a, subido_por, confirmado_at,
	extraccion_completa, extraccion_data, extraccion_resumen, extraccion_confianza, extraccion_fecha,
	created_at, updated_at`

// DocumentoRepo documentos sobre PostgreSQL. El índice único parcial
// uq_documentos_vigente garantiza un solo vigente por (empresa, tipo).
type DocumentoRepo struct {
	q Querier
}

func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

func (r *DocumentoRepo) Create(ctx context.Context, d *entity.Documento) error {
	query := `INSERT INTO documentos (` + documentoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.EmpresaID, d.Tipo, d.S3Bucket, d.S3Key, d.NombreOriginal, d.MimeType, d.TamanoBytes,
		d.EstadoCarga, d.EsVersionActual, d.ReemplazaA, d.SubidoPor, d.ConfirmadoAt,
		d.ExtraccionCompleta, nullJSON(d.ExtraccionData), d.ExtraccionResumen, d.ExtraccionConfianza, d.ExtraccionFecha,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert documento", err)
	}
	return nil
}

func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	if !validID(id) {
		return nil, nil
	}
	d, err := scanDocumento(r.q.QueryRow(ctx, `SELECT `+documentoColumns+` FROM documentos WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return d, nil
}

func (r *DocumentoRepo) GetVigente(ctx context.Context, empresaID string, tipo entity.TipoDocumento) (*entity.Documento, error) {
	if !validID(empresaID) {
		return nil, nil
	}
	query := `SELECT ` + documentoColumns + ` FROM documentos
		WHERE empresa_id = $1 AND tipo = $2 AND es_version_actual`
	d, err := scanDocumento(r.q.QueryRow(ctx, query, empresaID, tipo))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento vigente: %w", err)
	}
	return d, nil
}

// ListByEmpresa más reciente primero.
func (r *DocumentoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Documento, error) {
	if !validID(empresaID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+documentoColumns+` FROM documentos
		WHERE empresa_id = $1 ORDER BY created_at DESC, id`, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Documento
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	return out, nil
}

func (r *DocumentoRepo) MarcarNoVigente(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE documentos SET es_version_actual = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update documento %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update documento %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Confirmar otro vigente del mismo tipo viola uq_documentos_vigente -> domain.ErrDuplicate.
func (r *DocumentoRepo) Confirmar(ctx context.Context, d *entity.Documento) error {
	query := `
		UPDATE documentos
		SET es_version_actual = true, estado_carga = $2, reemplaza_a = $3,
		    confirmado_at = $4, tamano_bytes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, entity.CargaConfirmada, d.ReemplazaA, d.ConfirmadoAt, d.TamanoBytes, d.UpdatedAt)
	if err != nil {
		return writeErr("confirmar documento", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("confirmar documento %s: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

func scanDocumento(row pgx.Row) (*entity.Documento, error) {
	var d entity.Documento
	var data []byte
	err := row.Scan(
		&d.ID, &d.EmpresaID, &d.Tipo, &d.S3Bucket, &d.S3Key, &d.NombreOriginal, &d.MimeType, &d.TamanoBytes,
		&d.EstadoCarga, &d.EsVersionActual, &d.ReemplazaA, &d.SubidoPor, &d.ConfirmadoAt,
		&d.ExtraccionCompleta, &data, &d.ExtraccionResumen, &d.ExtraccionConfianza, &d.ExtraccionFecha,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		d.ExtraccionData = data
	}
	return &d, nil
}

// nullJSON payload vacío se guarda como NULL.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
