package onboarding

import "github.com/jhoicas/onboarding-pagadores/internal/domain/entity"

// TiposRequeridos los seis tipos obligatorios; "otro" nunca es requerido.
func TiposRequeridos() []entity.TipoDocumento {
	return []entity.TipoDocumento{
		entity.TipoCamaraComercio,
		entity.TipoRegistroAccionistas,
		entity.TipoRUT,
		entity.TipoCedulaRepresentanteLegal,
		entity.TipoDeclaracionRenta,
		entity.TipoEstadosFinancieros,
	}
}

// Completitud resultado de evaluar los documentos vigentes de una empresa.
type Completitud struct {
	Completa  bool
	Presentes []entity.TipoDocumento
	Faltantes []entity.TipoDocumento
}

// EvaluarCompletitud se calcula bajo demanda; no escribe nada.
// Solo cuentan los documentos marcados como versión actual.
func EvaluarCompletitud(docs []*entity.Documento) Completitud {
	vigentes := make(map[entity.TipoDocumento]bool, len(docs))
	for _, d := range docs {
		if d != nil && d.EsVersionActual {
			vigentes[d.Tipo] = true
		}
	}
	out := Completitud{
		Presentes: []entity.TipoDocumento{},
		Faltantes: []entity.TipoDocumento{},
	}
	for _, t := range TiposRequeridos() {
		if vigentes[t] {
			out.Presentes = append(out.Presentes, t)
		} else {
			out.Faltantes = append(out.Faltantes, t)
		}
	}
	out.Completa = len(out.Faltantes) == 0
	return out
}
