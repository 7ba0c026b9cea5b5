package sarlaft

import (
	"context"
	"errors"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainsarlaft "github.com/jhoicas/onboarding-pagadores/internal/domain/sarlaft"
)

// ScreenEmpresaAsync tamiza empresa y representante en segundo plano con un
// contexto propio y acotado; los fallos solo se registran.
func (uc *UseCase) ScreenEmpresaAsync(e *entity.Empresa) {
	if e == nil {
		return
	}
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), uc.autoTimeout)
		defer cancel()
		if err := uc.ScreenEmpresa(ctx, e); err != nil {
			uc.log.Warn().Err(err).Str("empresa_id", e.ID).Msg("tamizaje SARLAFT automático con errores")
		}
	}()
}

// Wait espera los tamizajes en curso; se usa en el apagado ordenado.
func (uc *UseCase) Wait() {
	uc.wg.Wait()
}

// ScreenEmpresa consulta por la razón social (NIT sin dígito) y por el representante legal.
// Los resultados no exitosos también se guardan para dejar rastro de la consulta.
func (uc *UseCase) ScreenEmpresa(ctx context.Context, e *entity.Empresa) error {
	consultas := []struct {
		scope string
		req   ports.ScreeningRequest
	}{
		{entity.ScopeEmpresa, ports.ScreeningRequest{
			Nombres:       e.RazonSocial,
			Documento:     e.NITBase(),
			TipoDocumento: "NIT",
		}},
		{entity.ScopeRepresentante, ports.ScreeningRequest{
			Nombres:       e.Representante.Nombre,
			Documento:     e.Representante.Cedula,
			TipoDocumento: e.Representante.TipoDocumento,
		}},
	}

	var errs []error
	for _, c := range consultas {
		if c.req.Nombres == "" || c.req.Documento == "" {
			continue
		}
		c.req.UserID = uc.providerUserID
		if e.IPRegistro != nil {
			c.req.IPAddress = *e.IPRegistro
		}
		resp, err := uc.consultar(ctx, c.req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		clas := domainsarlaft.Clasificar(resp.Status, resp.Body)
		uc.metrics.Screening(string(clas.Tipo))
		uc.guardar(ctx, e.ID, c.scope, c.req, resp, clas, nil)
		uc.log.Info().
			Str("empresa_id", e.ID).
			Str("scope", c.scope).
			Int("provider_status", resp.Status).
			Str("clasificacion", string(clas.Tipo)).
			Msg("tamizaje SARLAFT automático")
	}
	return errors.Join(errs...)
}
