package onboarding

import (
	"fmt"
	"strings"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

// MaxTamanoArchivo 10 MB.
const MaxTamanoArchivo int64 = 10 * 1024 * 1024

// MimeTypesPermitidos tipos aceptados en la carga de documentos.
var MimeTypesPermitidos = []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"}

// ParseTipoDocumento valida el tipo de documento.
func ParseTipoDocumento(raw string) (entity.TipoDocumento, error) {
	t := entity.TipoDocumento(strings.TrimSpace(raw))
	names := make([]string, 0, 7)
	for _, v := range entity.TiposDocumento() {
		if v == t {
			return t, nil
		}
		names = append(names, string(v))
	}
	return "", domain.InvalidInput("INVALID_TIPO_DOCUMENTO",
		"Tipo de documento inválido. Valores permitidos: "+strings.Join(names, ", ")).
		WithDetails(map[string]any{"permitidos": names})
}

// ValidarMimeType acepta solo PDF e imágenes JPEG/PNG.
func ValidarMimeType(mime string) error {
	m := strings.ToLower(strings.TrimSpace(mime))
	for _, v := range MimeTypesPermitidos {
		if v == m {
			return nil
		}
	}
	return domain.InvalidInput("INVALID_FILE_TYPE",
		"Tipo de archivo no permitido. Permitidos: "+strings.Join(MimeTypesPermitidos, ", ")).
		WithDetails(map[string]any{"permitidos": MimeTypesPermitidos})
}

// ValidarTamano el tamaño debe ser positivo y no superar MaxTamanoArchivo.
func ValidarTamano(size int64) error {
	if size <= 0 || size > MaxTamanoArchivo {
		return domain.InvalidInput("INVALID_FILE_SIZE",
			fmt.Sprintf("El archivo debe pesar entre 1 byte y %d bytes (10MB)", MaxTamanoArchivo))
	}
	return nil
}
