package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

const empresaColumns = `
	id, usuario_id, nit, razon_social, direccion, ciudad, departamento,
	actividad_economica, codigo_ciiu,
	representante_nombre, representante_tipo_doc, representante_cedula,
	representante_email, representante_telefono,
	estado, estado_anterior, fecha_cambio_estado, aprobado_por, fecha_aprobacion,
	ip_registro, user_agent, created_at, updated_at`

// EmpresaRepo implementación de repository.EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador sobre un pool o una tx.
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una nueva empresa. NIT o usuario repetido -> domain.ErrDuplicate.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `INSERT INTO empresas (` + empresaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	rep := e.Representante
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UsuarioID, e.NIT, e.RazonSocial, e.Direccion, e.Ciudad, e.Departamento,
		e.ActividadEconomica, e.CodigoCIIU,
		rep.Nombre, rep.TipoDocumento, rep.Cedula, rep.Email, rep.Telefono,
		e.Estado, e.EstadoAnterior, e.FechaCambioEstado, e.AprobadoPor, e.FechaAprobacion,
		e.IPRegistro, e.UserAgent, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert empresa", err)
	}
	return nil
}

func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get empresa", `SELECT `+empresaColumns+` FROM empresas WHERE id = $1`, id)
}

func (r *EmpresaRepo) GetByUsuarioID(ctx context.Context, usuarioID string) (*entity.Empresa, error) {
	return r.getOne(ctx, "get empresa por usuario", `SELECT `+empresaColumns+` FROM empresas WHERE usuario_id = $1`, usuarioID)
}

// GetForUpdate solo tiene efecto dentro de una transacción.
func (r *EmpresaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Empresa, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get empresa for update", `SELECT `+empresaColumns+` FROM empresas WHERE id = $1 FOR UPDATE`, id)
}

func (r *EmpresaRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Empresa, error) {
	e, err := scanEmpresa(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// UpdateEstado compara-e-intercambia sobre el estado leído.
func (r *EmpresaRepo) UpdateEstado(ctx context.Context, e *entity.Empresa, esperado entity.EstadoEmpresa) (bool, error) {
	query := `
		UPDATE empresas
		SET estado = $2, estado_anterior = $3, fecha_cambio_estado = $4,
		    aprobado_por = $5, fecha_aprobacion = $6, updated_at = $7
		WHERE id = $1 AND estado = $8`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Estado, e.EstadoAnterior, e.FechaCambioEstado,
		e.AprobadoPor, e.FechaAprobacion, e.UpdatedAt, esperado,
	)
	if err != nil {
		return false, writeErr("update estado empresa", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List filtra por estado y por razón social (contiene) o NIT (prefijo); más reciente primero.
func (r *EmpresaRepo) List(ctx context.Context, f repository.EmpresaFilter) ([]*entity.Empresa, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Estado != nil {
		args = append(args, *f.Estado)
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%", escapeLike(s)+"%")
		where = append(where, fmt.Sprintf("(razon_social ILIKE $%d OR nit LIKE $%d)", len(args)-1, len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM empresas`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count empresas: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM empresas%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		empresaColumns, cond, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Empresa
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan empresa: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list empresas: %w", err)
	}
	return out, total, nil
}

// ContarPorEstado un GROUP BY sobre estado.
func (r *EmpresaRepo) ContarPorEstado(ctx context.Context) (map[entity.EstadoEmpresa]int, error) {
	rows, err := r.q.Query(ctx, `SELECT estado, count(*) FROM empresas GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("contar empresas por estado: %w", err)
	}
	defer rows.Close()

	out := map[entity.EstadoEmpresa]int{}
	for rows.Next() {
		var (
			estado entity.EstadoEmpresa
			n      int
		)
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan conteo por estado: %w", err)
		}
		out[estado] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contar empresas por estado: %w", err)
	}
	return out, nil
}

func scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	rep := &e.Representante
	err := row.Scan(
		&e.ID, &e.UsuarioID, &e.NIT, &e.RazonSocial, &e.Direccion, &e.Ciudad, &e.Departamento,
		&e.ActividadEconomica, &e.CodigoCIIU,
		&rep.Nombre, &rep.TipoDocumento, &rep.Cedula, &rep.Email, &rep.Telefono,
		&e.Estado, &e.EstadoAnterior, &e.FechaCambioEstado, &e.AprobadoPor, &e.FechaAprobacion,
		&e.IPRegistro, &e.UserAgent, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
