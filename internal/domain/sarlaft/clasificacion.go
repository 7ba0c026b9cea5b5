// Package sarlaft interpreta las respuestas del proveedor de listas restrictivas.
// El proveedor no publica un esquema estable, así que la clasificación recorre
// el JSON buscando nombres de campo conocidos con una profundidad acotada.
package sarlaft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Tipo variante de la clasificación.
type Tipo string

const (
	Limpio         Tipo = "limpio"
	Alerta         Tipo = "alerta"
	ErrorProveedor Tipo = "error_proveedor"
	Pendiente      Tipo = "pendiente"
)

// MaxProfundidad niveles de anidamiento que se inspeccionan.
const MaxProfundidad = 8

// Clasificacion resultado interpretado. Detalles solo aplica a Alerta y Status
// solo a ErrorProveedor.
type Clasificacion struct {
	Tipo     Tipo
	Detalles []string
	Status   int
}

var (
	clavesLista  = set("coincidencias", "matches", "hallazgos", "alertas", "hits", "listas_coincidentes")
	clavesBool   = set("alerta", "alert", "match", "en_lista", "reportado", "tiene_coincidencias", "has_matches")
	clavesConteo = set("total_coincidencias", "numero_coincidencias", "match_count", "matches_count")
	clavesEstado = set("estado", "status", "resultado", "result")

	estadosAlerta    = set("alerta", "alert", "match", "coincidencia", "con_coincidencias", "reportado", "positivo", "hit")
	estadosLimpio    = set("limpio", "clean", "ok", "sin_coincidencias", "no_match", "negativo", "clear")
	estadosPendiente = set("pendiente", "pending", "procesando", "processing", "en_proceso", "queued")

	clavesEtiqueta = []string{"lista", "list", "fuente", "source", "tipo_lista", "nombre", "name", "descripcion"}
)

// Clasificar interpreta status y cuerpo de una respuesta del proveedor.
func Clasificar(status int, body json.RawMessage) Clasificacion {
	if status < 200 || status > 299 {
		return Clasificacion{Tipo: ErrorProveedor, Status: status}
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Clasificacion{Tipo: Pendiente}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Clasificacion{Tipo: Pendiente}
	}

	s := &scan{vistos: map[string]bool{}}
	s.walk("", v, 0)
	switch {
	case len(s.detalles) > 0:
		return Clasificacion{Tipo: Alerta, Detalles: s.detalles}
	case s.pendiente:
		return Clasificacion{Tipo: Pendiente}
	case s.limpio:
		return Clasificacion{Tipo: Limpio}
	}
	return Clasificacion{Tipo: Pendiente}
}

type scan struct {
	detalles  []string
	vistos    map[string]bool
	limpio    bool
	pendiente bool
}

func (s *scan) alerta(d string) {
	if d == "" || s.vistos[d] {
		return
	}
	s.vistos[d] = true
	s.detalles = append(s.detalles, d)
}

func (s *scan) walk(key string, v any, depth int) {
	if depth > MaxProfundidad {
		return
	}
	k := normalizar(key)
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for kk := range x {
			keys = append(keys, kk)
		}
		sort.Strings(keys)
		for _, kk := range keys {
			s.walk(kk, x[kk], depth+1)
		}
	case []any:
		if clavesLista[k] {
			if len(x) == 0 {
				s.limpio = true
				return
			}
			for i, el := range x {
				s.alerta(etiqueta(key, i, el))
			}
			return
		}
		for _, el := range x {
			s.walk("", el, depth+1)
		}
	case bool:
		if clavesBool[k] {
			if x {
				s.alerta(key)
			} else {
				s.limpio = true
			}
		}
	case json.Number:
		if clavesConteo[k] {
			if n, err := x.Float64(); err == nil {
				if n > 0 {
					s.alerta(fmt.Sprintf("%s=%s", key, x.String()))
				} else {
					s.limpio = true
				}
			}
		}
	case string:
		if !clavesEstado[k] {
			return
		}
		val := normalizar(x)
		switch {
		case estadosAlerta[val]:
			s.alerta(key + "=" + x)
		case estadosPendiente[val]:
			s.pendiente = true
		case estadosLimpio[val]:
			s.limpio = true
		}
	}
}

// etiqueta describe un elemento de una lista de coincidencias.
func etiqueta(key string, i int, el any) string {
	switch x := el.(type) {
	case string:
		if strings.TrimSpace(x) != "" {
			return strings.TrimSpace(x)
		}
	case map[string]any:
		for _, c := range clavesEtiqueta {
			for kk, vv := range x {
				if normalizar(kk) != c {
					continue
				}
				if sv, ok := vv.(string); ok && strings.TrimSpace(sv) != "" {
					return strings.TrimSpace(sv)
				}
			}
		}
	}
	return fmt.Sprintf("%s[%d]", key, i)
}

func normalizar(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}
