package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/dto"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
	domainob "github.com/jhoicas/onboarding-pagadores/internal/domain/onboarding"
)

// AutorizarSubida valida la solicitud, firma un PUT y reserva el documento.
// Ninguna validación fallida deja registros; el documento queda en pendiente_carga
// y no cuenta para la completitud hasta ConfirmarSubida.
func (uc *UseCase) AutorizarSubida(ctx context.Context, sol dto.Solicitante, in dto.GenerarURLSubidaRequest) (*dto.GenerarURLSubidaResponse, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, err
	}
	in.EmpresaID = strings.TrimSpace(in.EmpresaID)
	in.NombreArchivo = strings.TrimSpace(in.NombreArchivo)
	in.MimeType = strings.ToLower(strings.TrimSpace(in.MimeType))
	if in.EmpresaID == "" || strings.TrimSpace(in.TipoDocumento) == "" || in.NombreArchivo == "" || in.MimeType == "" || in.TamanoBytes == 0 {
		return nil, domain.InvalidInput("MISSING_FIELD", "Faltan campos requeridos: empresa_id, tipo_documento, nombre_archivo, mime_type, tamano_bytes")
	}
	tipo, err := domainob.ParseTipoDocumento(in.TipoDocumento)
	if err != nil {
		return nil, err
	}
	if err := domainob.ValidarTamano(in.TamanoBytes); err != nil {
		return nil, err
	}
	if err := domainob.ValidarMimeType(in.MimeType); err != nil {
		return nil, err
	}

	empresa, err := uc.repos.Empresas.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	if err := access.AutorizarEmpresa(ctx, uc.repos.Usuarios, sol.UsuarioID, empresa,
		"No tienes permiso para subir documentos a esta empresa"); err != nil {
		return nil, err
	}

	now := uc.now()
	docID := uc.newID()
	bucket := uc.presigner.Bucket()
	key := domainob.BuildObjectKey(uc.keyPrefix, empresa.NIT, tipo, in.NombreArchivo, now, domainob.ShortID(uc.newID()))

	signed, err := uc.presigner.PresignPut(bucket, key, in.MimeType)
	if err != nil {
		uc.metrics.URLFirmada("PUT", "error")
		return nil, storageErr("S3_ERROR", err)
	}

	subidoPor := sol.UsuarioID
	doc := &entity.Documento{
		ID:             docID,
		EmpresaID:      empresa.ID,
		Tipo:           tipo,
		S3Bucket:       bucket,
		S3Key:          key,
		NombreOriginal: in.NombreArchivo,
		MimeType:       in.MimeType,
		TamanoBytes:    in.TamanoBytes,
		EstadoCarga:    entity.CargaPendiente,
		SubidoPor:      &subidoPor,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	if err := uc.repos.Documentos.Create(ctx, doc); err != nil {
		uc.metrics.URLFirmada("PUT", "error")
		return nil, domain.Storage("DATABASE_ERROR", err)
	}
	uc.metrics.URLFirmada("PUT", "ok")

	return &dto.GenerarURLSubidaResponse{
		PresignedURL: signed.URL,
		S3Bucket:     bucket,
		S3Key:        key,
		DocumentoID:  doc.ID,
		ExpiresIn:    signed.ExpiresIn,
		Headers:      signed.Headers,
	}, nil
}

// ConfirmarSubida verifica que el objeto exista y, en una transacción, marca el
// documento como vigente desplazando al anterior del mismo tipo.
func (uc *UseCase) ConfirmarSubida(ctx context.Context, sol dto.Solicitante, documentoID string) (*dto.DocumentoResponse, error) {
	doc, empresa, err := uc.documentoAccesible(ctx, sol, documentoID)
	if err != nil {
		return nil, err
	}
	if doc.EstadoCarga == entity.CargaConfirmada {
		out := dto.FromDocumento(doc)
		return &out, nil
	}
	if err := ubicacionValida(doc); err != nil {
		return nil, err
	}

	if uc.inspector != nil {
		info, err := uc.inspector.Stat(ctx, doc.S3Bucket, doc.S3Key)
		if err != nil {
			return nil, storageErr("S3_ERROR", err)
		}
		if info == nil {
			return nil, domain.Conflict("OBJETO_NO_ENCONTRADO", "El archivo aún no se ha subido al almacenamiento")
		}
		if info.Size > 0 && info.Size != doc.TamanoBytes {
			return nil, domain.Conflict("TAMANO_NO_COINCIDE", "El tamaño del archivo subido no coincide con el declarado").
				WithDetails(map[string]any{"declarado": doc.TamanoBytes, "almacenado": info.Size})
		}
	} else {
		uc.log.Warn().Str("documento_id", doc.ID).Msg("confirmación sin verificación de objeto: inspector no configurado")
	}

	now := uc.now().UTC()
	err = uc.tx.RunInTx(ctx, func(r ports.Repos) error {
		prev, err := r.Documentos.GetVigente(ctx, empresa.ID, doc.Tipo)
		if err != nil {
			return domain.Storage("DATABASE_ERROR", err)
		}
		if prev != nil && prev.ID != doc.ID {
			if err := r.Documentos.MarcarNoVigente(ctx, prev.ID); err != nil {
				return domain.Storage("DATABASE_ERROR", err)
			}
			prevID := prev.ID
			doc.ReemplazaA = &prevID
		}
		doc.EsVersionActual = true
		doc.EstadoCarga = entity.CargaConfirmada
		doc.ConfirmadoAt = &now
		doc.UpdatedAt = now
		if err := r.Documentos.Confirmar(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("CONFIRMACION_CONCURRENTE", "Otro documento del mismo tipo se confirmó al mismo tiempo; intenta de nuevo")
			}
			return domain.Storage("DATABASE_ERROR", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromDocumento(doc)
	return &out, nil
}

// AutorizarDescarga firma un GET para el documento. Rechaza ubicaciones vacías
// antes de firmar para no emitir URLs que apunten a la raíz del bucket.
func (uc *UseCase) AutorizarDescarga(ctx context.Context, sol dto.Solicitante, documentoID string) (*dto.ObtenerURLDocumentoResponse, error) {
	doc, _, err := uc.documentoAccesible(ctx, sol, documentoID)
	if err != nil {
		return nil, err
	}
	if err := ubicacionValida(doc); err != nil {
		return nil, err
	}
	signed, err := uc.presigner.PresignGet(doc.S3Bucket, doc.S3Key)
	if err != nil {
		uc.metrics.URLFirmada("GET", "error")
		return nil, storageErr("S3_ERROR", err)
	}
	uc.metrics.URLFirmada("GET", "ok")
	return &dto.ObtenerURLDocumentoResponse{
		PresignedURL:   signed.URL,
		ExpiresIn:      signed.ExpiresIn,
		MimeType:       doc.MimeType,
		NombreOriginal: doc.NombreOriginal,
	}, nil
}

func (uc *UseCase) documentoAccesible(ctx context.Context, sol dto.Solicitante, documentoID string) (*entity.Documento, *entity.Empresa, error) {
	if err := access.RequireUser(sol.UsuarioID); err != nil {
		return nil, nil, err
	}
	documentoID = strings.TrimSpace(documentoID)
	if documentoID == "" {
		return nil, nil, domain.InvalidInput("MISSING_FIELD", "documento_id es requerido")
	}
	doc, err := uc.repos.Documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, nil, domain.Storage("DATABASE_ERROR", err)
	}
	var empresa *entity.Empresa
	if doc != nil {
		empresa, err = uc.repos.Empresas.GetByID(ctx, doc.EmpresaID)
		if err != nil {
			return nil, nil, domain.Storage("DATABASE_ERROR", err)
		}
	}
	ok, err := access.CanAccessEmpresa(ctx, uc.repos.Usuarios, sol.UsuarioID, empresa)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.Forbidden("UNAUTHORIZED_DOCUMENTO", "No tienes permiso para ver este documento")
	}
	if doc == nil {
		return nil, nil, domain.NotFound("DOCUMENTO_NOT_FOUND", "El documento no existe")
	}
	if empresa == nil {
		return nil, nil, domain.NotFound("EMPRESA_NOT_FOUND", "La empresa no existe")
	}
	return doc, empresa, nil
}

func ubicacionValida(doc *entity.Documento) error {
	if strings.TrimSpace(doc.S3Bucket) == "" || strings.Trim(strings.TrimSpace(doc.S3Key), "/") == "" {
		return domain.NewError(domain.ErrStorage, "DOCUMENTO_SIN_UBICACION", "El documento no tiene bucket o key de almacenamiento")
	}
	return nil
}

// storageErr conserva los errores ya codificados por el adaptador (CONFIG_ERROR, ...).
func storageErr(code string, err error) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	return domain.Storage(code, err)
}
