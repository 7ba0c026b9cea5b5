package ports

import (
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

// Expediente datos del dossier de revisión de una empresa.
type Expediente struct {
	Empresa     *entity.Empresa
	Documentos  []*entity.Documento
	Historial   []*entity.HistorialEstado
	Completitud onboarding.Completitud
	GeneradoPor string
	GeneradoAt  time.Time
}

// ExpedientePDFGenerator genera la representación PDF del expediente.
type ExpedientePDFGenerator interface {
	Generate(exp Expediente) ([]byte, error)
}
