package dto

import (
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

// FromEmpresa convierte la entidad a respuesta.
func FromEmpresa(e *entity.Empresa) EmpresaResponse {
	out := EmpresaResponse{
		ID:                              e.ID,
		UsuarioID:                       e.UsuarioID,
		NIT:                             e.NIT,
		RazonSocial:                     e.RazonSocial,
		Direccion:                       e.Direccion,
		Ciudad:                          e.Ciudad,
		Departamento:                    e.Departamento,
		ActividadEconomica:              e.ActividadEconomica,
		CodigoCIIU:                      e.CodigoCIIU,
		RepresentanteLegalNombre:        e.Representante.Nombre,
		RepresentanteLegalTipoDocumento: e.Representante.TipoDocumento,
		RepresentanteLegalCedula:        e.Representante.Cedula,
		RepresentanteLegalEmail:         e.Representante.Email,
		RepresentanteLegalTelefono:      e.Representante.Telefono,
		Estado:                          string(e.Estado),
		FechaCambioEstado:               e.FechaCambioEstado,
		AprobadoPor:                     e.AprobadoPor,
		FechaAprobacion:                 e.FechaAprobacion,
		CreatedAt:                       e.CreatedAt,
		UpdatedAt:                       e.UpdatedAt,
	}
	if e.EstadoAnterior != nil {
		s := string(*e.EstadoAnterior)
		out.EstadoAnterior = &s
	}
	return out
}

// FromDocumento convierte la entidad a respuesta.
func FromDocumento(d *entity.Documento) DocumentoResponse {
	return DocumentoResponse{
		ID:                  d.ID,
		EmpresaID:           d.EmpresaID,
		TipoDocumento:       string(d.Tipo),
		S3Bucket:            d.S3Bucket,
		S3Key:               d.S3Key,
		NombreOriginal:      d.NombreOriginal,
		MimeType:            d.MimeType,
		TamanoBytes:         d.TamanoBytes,
		EstadoCarga:         string(d.EstadoCarga),
		EsVersionActual:     d.EsVersionActual,
		ReemplazaA:          d.ReemplazaA,
		ExtraccionCompleta:  d.ExtraccionCompleta,
		ExtraccionData:      d.ExtraccionData,
		ExtraccionResumen:   d.ExtraccionResumen,
		ExtraccionConfianza: d.ExtraccionConfianza,
		CreatedAt:           d.CreatedAt,
	}
}

// FromDocumentos convierte una lista; nunca devuelve nil.
func FromDocumentos(docs []*entity.Documento) []DocumentoResponse {
	out := make([]DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocumento(d))
	}
	return out
}

// FromCompletitud convierte el resultado de la verificación.
func FromCompletitud(c onboarding.Completitud) CompletitudResponse {
	out := CompletitudResponse{
		Completa:  c.Completa,
		Presentes: make([]string, 0, len(c.Presentes)),
		Faltantes: make([]string, 0, len(c.Faltantes)),
	}
	for _, t := range c.Presentes {
		out.Presentes = append(out.Presentes, string(t))
	}
	for _, t := range c.Faltantes {
		out.Faltantes = append(out.Faltantes, string(t))
	}
	return out
}

// FromHistorial convierte una entrada del historial.
func FromHistorial(h *entity.HistorialEstado) HistorialEstadoResponse {
	out := HistorialEstadoResponse{
		ID:          h.ID,
		EmpresaID:   h.EmpresaID,
		EstadoNuevo: string(h.EstadoNuevo),
		CambiadoPor: h.CambiadoPor,
		Motivo:      h.Motivo,
		CreatedAt:   h.CreatedAt,
	}
	if h.EstadoAnterior != nil {
		s := string(*h.EstadoAnterior)
		out.EstadoAnterior = &s
	}
	return out
}

// FromComentario convierte un comentario interno.
func FromComentario(c *entity.ComentarioInterno) ComentarioResponse {
	return ComentarioResponse{
		ID:         c.ID,
		EmpresaID:  c.EmpresaID,
		UsuarioID:  c.UsuarioID,
		Comentario: c.Comentario,
		CreatedAt:  c.CreatedAt,
	}
}

// FromValidacionSarlaft convierte una validación guardada.
func FromValidacionSarlaft(v *entity.ValidacionSarlaft) ValidacionSarlaftResponse {
	return ValidacionSarlaftResponse{
		ID:             v.ID,
		EmpresaID:      v.EmpresaID,
		Scope:          v.Scope,
		Nombres:        v.Nombres,
		Documento:      v.Documento,
		TipoDocumento:  v.TipoDocumento,
		ProviderStatus: v.ProviderStatus,
		Clasificacion:  v.Clasificacion,
		Resultado:      v.Resultado,
		ConsultadoPor:  v.ConsultadoPor,
		CreatedAt:      v.CreatedAt,
	}
}
