package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Repos repositorios sobre el pool, fuera de transacción.
func (r *TxRunner) Repos() ports.Repos {
	return NewRepos(r.pool)
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping para /health.
func (r *TxRunner) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// NewRepos repositorios sobre q (pool o tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Empresas:    NewEmpresaRepository(q),
		Documentos:  NewDocumentoRepository(q),
		Historial:   NewHistorialRepository(q),
		Comentarios: NewComentarioRepository(q),
		Usuarios:    NewUsuarioRepository(q),
		Sarlaft:     NewSarlaftRepository(q),
	}
}
