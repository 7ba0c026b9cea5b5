package onboarding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

func datosValidos() onboarding.DatosRegistro {
	return onboarding.DatosRegistro{
		NIT:                "900123456-8",
		RazonSocial:        "Pagadora Andina S.A.S.",
		Direccion:          "Calle 100 # 19-54 Oficina 801",
		Ciudad:             "Bogotá",
		Departamento:       "Cundinamarca",
		ActividadEconomica: "Comercio al por mayor",
		CodigoCIIU:         "4690",
		Representante: entity.RepresentanteLegal{
			Nombre:        "María Fernanda Ruiz",
			TipoDocumento: "cc",
			Cedula:        "52123456",
			Email:         "Maria.Ruiz@andina.co",
			Telefono:      "+573001234567",
		},
	}
}

func TestValidarRegistro_Valido(t *testing.T) {
	d := datosValidos().Normalizar()
	assert.Equal(t, "CC", d.Representante.TipoDocumento)
	assert.Equal(t, "maria.ruiz@andina.co", d.Representante.Email)
	assert.NoError(t, onboarding.ValidarRegistro(d))
}

func TestValidarRegistro_CamposInvalidos(t *testing.T) {
	d := datosValidos().Normalizar()
	d.NIT = "900123456-1"
	d.CodigoCIIU = "46"
	d.Representante.Telefono = "3001234567"
	d.Representante.TipoDocumento = "PA"

	err := onboarding.ValidarRegistro(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	campos := de.Details.(map[string]any)["campos"].(map[string]string)
	assert.Contains(t, campos, "nit")
	assert.Contains(t, campos, "codigo_ciiu")
	assert.Contains(t, campos, "representante_legal_telefono")
	assert.Contains(t, campos, "representante_legal_tipo_documento")
	assert.NotContains(t, campos, "razon_social")
}

func TestValidarRegistro_NITSinGuion(t *testing.T) {
	d := datosValidos().Normalizar()
	d.NIT = "9001234568"
	err := onboarding.ValidarRegistro(d)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Formato: 900123456-7", de.Details.(map[string]any)["campos"].(map[string]string)["nit"])
}
