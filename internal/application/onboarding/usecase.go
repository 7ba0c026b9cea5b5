// Package onboarding casos de uso del lado de la empresa pagadora: registro,
// consulta propia y carga/descarga de documentos con URLs prefirmadas.
package onboarding

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// Screener tamizaje SARLAFT en segundo plano tras el registro.
type Screener interface {
	ScreenEmpresaAsync(e *entity.Empresa)
}

// Deps dependencias del caso de uso.
type Deps struct {
	Repos     ports.Repos
	Tx        ports.TxRunner
	Presigner ports.ObjectPresigner
	Inspector ports.ObjectInspector // nil = no se verifica la existencia del objeto
	Screener  Screener              // nil = sin tamizaje automático
	Metrics   ports.Metrics
	Logger    zerolog.Logger
	KeyPrefix string
	Now       func() time.Time
	NewID     func() string
}

// UseCase casos de uso de onboarding.
type UseCase struct {
	repos     ports.Repos
	tx        ports.TxRunner
	presigner ports.ObjectPresigner
	inspector ports.ObjectInspector
	screener  Screener
	metrics   ports.Metrics
	log       zerolog.Logger
	keyPrefix string
	now       func() time.Time
	newID     func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		repos:     d.Repos,
		tx:        d.Tx,
		presigner: d.Presigner,
		inspector: d.Inspector,
		screener:  d.Screener,
		metrics:   d.Metrics,
		log:       d.Logger.With().Str("component", "onboarding").Logger(),
		keyPrefix: d.KeyPrefix,
		now:       d.Now,
		newID:     d.NewID,
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopMetrics{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}
