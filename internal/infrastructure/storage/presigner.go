// Package storage adapta el almacenamiento de objetos: firma de URLs con
// pkg/presign y verificación de objetos con el SDK de AWS.
package storage

import (
	"errors"
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain"
	"github.com/jhoicas/onboarding-pagadores/pkg/config"
	"github.com/jhoicas/onboarding-pagadores/pkg/presign"
)

var _ ports.ObjectPresigner = (*Presigner)(nil)

// Presigner implementa ports.ObjectPresigner.
type Presigner struct {
	signer  *presign.Signer
	bucket  string
	sse     string
	expires time.Duration
}

// NewPresigner construye el adaptador. now nil = reloj del sistema.
func NewPresigner(cfg config.S3Config, now func() time.Time) (*Presigner, error) {
	signer, err := presign.New(presign.Config{
		Credentials: presign.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			SessionToken:    cfg.SessionToken,
		},
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
		Now:      now,
	})
	if err != nil {
		return nil, err
	}
	expires := cfg.PresignExpires
	if expires <= 0 {
		expires = 900 * time.Second
	}
	return &Presigner{signer: signer, bucket: cfg.Bucket, sse: cfg.SSE, expires: expires}, nil
}

// Bucket bucket donde se guardan los documentos nuevos.
func (p *Presigner) Bucket() string { return p.bucket }

// PresignPut firma la subida. Content-Type y la cabecera de cifrado quedan firmadas,
// así que el cliente debe enviarlas exactamente como se devuelven.
func (p *Presigner) PresignPut(bucket, key, contentType string) (*ports.PresignedURL, error) {
	headers := map[string]string{"Content-Type": contentType}
	if p.sse != "" {
		headers["x-amz-server-side-encryption"] = p.sse
	}
	return p.presign("PUT", bucket, key, headers)
}

// PresignGet firma la descarga.
func (p *Presigner) PresignGet(bucket, key string) (*ports.PresignedURL, error) {
	return p.presign("GET", bucket, key, nil)
}

func (p *Presigner) presign(method, bucket, key string, headers map[string]string) (*ports.PresignedURL, error) {
	res, err := p.signer.Presign(presign.Request{
		Method:  method,
		Bucket:  bucket,
		Key:     key,
		Expires: p.expires,
		Headers: headers,
	})
	if err != nil {
		return nil, translate(err)
	}
	return &ports.PresignedURL{
		URL:       res.URL,
		Headers:   res.Headers,
		ExpiresIn: int(p.expires / time.Second),
		ExpiresAt: res.ExpiresAt,
	}, nil
}

// translate separa errores de configuración (operador) de errores de ubicación del documento.
func translate(err error) error {
	switch {
	case errors.Is(err, presign.ErrMissingCredentials):
		return domain.NewError(domain.ErrConfig, "CONFIG_ERROR",
			"Credenciales de almacenamiento no configuradas").Wrap(err)
	case errors.Is(err, presign.ErrEmptyBucket), errors.Is(err, presign.ErrEmptyKey):
		return domain.NewError(domain.ErrStorage, "DOCUMENTO_SIN_UBICACION",
			"El documento no tiene bucket o key de almacenamiento").Wrap(err)
	}
	return domain.NewError(domain.ErrStorage, "S3_ERROR", "Error al generar la URL firmada").Wrap(err)
}
