package sarlaft_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/onboarding-pagadores/internal/domain/sarlaft"
)

func TestClasificar_StatusNoExitosoEsErrorProveedor(t *testing.T) {
	c := sarlaft.Clasificar(503, json.RawMessage(`{"coincidencias":["OFAC"]}`))
	assert.Equal(t, sarlaft.ErrorProveedor, c.Tipo)
	assert.Equal(t, 503, c.Status)
	assert.Empty(t, c.Detalles)
}

func TestClasificar_Casos(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		tipo     sarlaft.Tipo
		detalles []string
	}{
		{"cuerpo vacio", ``, sarlaft.Pendiente, nil},
		{"null", `null`, sarlaft.Pendiente, nil},
		{"no json", `<html>`, sarlaft.Pendiente, nil},
		{"forma desconocida", `{"foo":"bar"}`, sarlaft.Pendiente, nil},
		{"lista vacia", `{"coincidencias":[]}`, sarlaft.Limpio, nil},
		{"estado limpio", `{"data":{"estado":"Sin coincidencias"}}`, sarlaft.Limpio, nil},
		{"bool falso", `{"resultado":{"en_lista":false}}`, sarlaft.Limpio, nil},
		{"pendiente", `{"status":"processing"}`, sarlaft.Pendiente, nil},
		{
			"coincidencias con lista",
			`{"data":{"coincidencias":[{"lista":"OFAC","nombre":"X"},{"fuente":"ONU"},{"score":1}]}}`,
			sarlaft.Alerta,
			[]string{"OFAC", "ONU", "coincidencias[2]"},
		},
		{"bool verdadero", `{"Match": true}`, sarlaft.Alerta, []string{"Match"}},
		{"conteo", `{"total_coincidencias": 2}`, sarlaft.Alerta, []string{"total_coincidencias=2"}},
		{"conteo cero", `{"total_coincidencias": 0}`, sarlaft.Limpio, nil},
		{"estado alerta gana a limpio", `{"estado":"ok","detalle":{"status":"ALERTA"}}`, sarlaft.Alerta, []string{"status=ALERTA"}},
		{"detalles sin duplicados", `{"matches":["OFAC","OFAC"]}`, sarlaft.Alerta, []string{"OFAC"}},
		{"listas dentro de arreglos", `[{"hits":["PEP"]}]`, sarlaft.Alerta, []string{"PEP"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := sarlaft.Clasificar(200, json.RawMessage(tc.body))
			assert.Equal(t, tc.tipo, c.Tipo)
			assert.Equal(t, tc.detalles, c.Detalles)
		})
	}
}

func TestClasificar_ProfundidadAcotada(t *testing.T) {
	anidar := func(niveles int) string {
		return strings.Repeat(`{"n":`, niveles) + `{"alerta":true}` + strings.Repeat(`}`, niveles)
	}
	assert.Equal(t, sarlaft.Alerta, sarlaft.Clasificar(200, json.RawMessage(anidar(sarlaft.MaxProfundidad-1))).Tipo)
	assert.Equal(t, sarlaft.Pendiente, sarlaft.Clasificar(200, json.RawMessage(anidar(sarlaft.MaxProfundidad+5))).Tipo)
}
