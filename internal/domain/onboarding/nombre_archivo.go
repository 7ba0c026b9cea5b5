package onboarding

import (
	"strings"
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

const (
	maxNombreSanitizado = 50
	maxExtension        = 10
	extensionDefecto    = "pdf"
	nombreDefecto       = "archivo"
	formatoTimestamp    = "20060102_150405"
)

// SplitExtension separa el nombre en base y extensión (texto tras el último punto).
// Sin extensión, ext queda vacía.
func SplitExtension(filename string) (base, ext string) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename, ""
	}
	return filename[:i], filename[i+1:]
}

// SanitizeFilename minúsculas, caracteres fuera de [a-z0-9._-] a "_", colapsa "_"
// repetidos, recorta a 50 y quita "_" de los extremos. Idempotente.
// Recibe el nombre sin extensión.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevUnderscore := false
	for _, r := range strings.ToLower(name) {
		if !allowedFilenameRune(r) {
			r = '_'
		}
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	if len(s) > maxNombreSanitizado {
		s = s[:maxNombreSanitizado]
	}
	return strings.Trim(s, "_")
}

// SanitizeExtension extensión en minúsculas solo con [a-z0-9]; "pdf" si queda vacía.
func SanitizeExtension(ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxExtension {
		s = s[:maxExtension]
	}
	if s == "" {
		return extensionDefecto
	}
	return s
}

// BuildObjectKey arma la key del objeto:
// {prefijo}/pagadores/{nit}/{tipo}/{YYYYMMDD_HHMMSS}_{idCorto}_{nombre}.{ext}
func BuildObjectKey(prefix, nit string, tipo entity.TipoDocumento, filename string, now time.Time, shortID string) string {
	base, ext := SplitExtension(filename)
	nombre := SanitizeFilename(base)
	if nombre == "" {
		nombre = nombreDefecto
	}
	parts := []string{}
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts,
		"pagadores",
		nit,
		string(tipo),
		now.UTC().Format(formatoTimestamp)+"_"+shortID+"_"+nombre+"."+SanitizeExtension(ext),
	)
	return strings.Join(parts, "/")
}

// ShortID primer segmento de un UUID (8 caracteres hex).
func ShortID(uuid string) string {
	if i := strings.Index(uuid, "-"); i > 0 {
		return uuid[:i]
	}
	if len(uuid) > 8 {
		return uuid[:8]
	}
	return uuid
}

func allowedFilenameRune(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
