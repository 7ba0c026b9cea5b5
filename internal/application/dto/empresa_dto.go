package dto

import "time"

// RegistrarEmpresaRequest cuerpo de POST /api/empresas.
type RegistrarEmpresaRequest struct {
	NIT                             string `json:"nit"`
	RazonSocial                     string `json:"razon_social"`
	Direccion                       string `json:"direccion"`
	Ciudad                          string `json:"ciudad"`
	Departamento                    string `json:"departamento"`
	ActividadEconomica              string `json:"actividad_economica"`
	CodigoCIIU                      string `json:"codigo_ciiu"`
	RepresentanteLegalNombre        string `json:"representante_legal_nombre"`
	RepresentanteLegalTipoDocumento string `json:"representante_legal_tipo_documento"`
	RepresentanteLegalCedula        string `json:"representante_legal_cedula"`
	RepresentanteLegalEmail         string `json:"representante_legal_email"`
	RepresentanteLegalTelefono      string `json:"representante_legal_telefono"`
}

// Solicitante identidad y origen de la petición.
type Solicitante struct {
	UsuarioID string
	Email     string
	IP        string
	UserAgent string
}

// EmpresaResponse empresa serializada.
type EmpresaResponse struct {
	ID                              string     `json:"id"`
	UsuarioID                       string     `json:"usuario_id"`
	NIT                             string     `json:"nit"`
	RazonSocial                     string     `json:"razon_social"`
	Direccion                       string     `json:"direccion"`
	Ciudad                          string     `json:"ciudad"`
	Departamento                    string     `json:"departamento"`
	ActividadEconomica              string     `json:"actividad_economica"`
	CodigoCIIU                      string     `json:"codigo_ciiu"`
	RepresentanteLegalNombre        string     `json:"representante_legal_nombre"`
	RepresentanteLegalTipoDocumento string     `json:"representante_legal_tipo_documento"`
	RepresentanteLegalCedula        string     `json:"representante_legal_cedula"`
	RepresentanteLegalEmail         string     `json:"representante_legal_email"`
	RepresentanteLegalTelefono      string     `json:"representante_legal_telefono"`
	Estado                          string     `json:"estado"`
	EstadoAnterior                  *string    `json:"estado_anterior"`
	FechaCambioEstado               *time.Time `json:"fecha_cambio_estado"`
	AprobadoPor                     *string    `json:"aprobado_por"`
	FechaAprobacion                 *time.Time `json:"fecha_aprobacion"`
	CreatedAt                       time.Time  `json:"created_at"`
	UpdatedAt                       time.Time  `json:"updated_at"`
}

// CompletitudResponse resultado de la verificación documental.
type CompletitudResponse struct {
	Completa  bool     `json:"completa"`
	Presentes []string `json:"presentes"`
	Faltantes []string `json:"faltantes"`
}

// EmpresaDetalleResponse empresa con sus documentos vigentes y completitud.
type EmpresaDetalleResponse struct {
	Empresa     EmpresaResponse     `json:"empresa"`
	Documentos  []DocumentoResponse `json:"documentos"`
	Completitud CompletitudResponse `json:"completitud"`
}

// EmpresaListResponse listado paginado del back-office.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
