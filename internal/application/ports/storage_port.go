package ports

import (
	"context"
	"time"
)

// PresignedURL URL firmada lista para entregar al cliente.
type PresignedURL struct {
	URL       string
	Headers   map[string]string // encabezados firmados que el cliente debe enviar
	ExpiresIn int               // segundos
	ExpiresAt time.Time
}

// ObjectPresigner firma operaciones PUT/GET sobre un objeto. No hace I/O de red.
type ObjectPresigner interface {
	Bucket() string
	PresignPut(bucket, key, contentType string) (*PresignedURL, error)
	PresignGet(bucket, key string) (*PresignedURL, error)
}

// ObjectInfo metadatos de un objeto existente.
type ObjectInfo struct {
	Size        int64
	ContentType string
	ETag        string
}

// ObjectInspector consulta la existencia de objetos. Stat devuelve (nil, nil) si no existe.
type ObjectInspector interface {
	Stat(ctx context.Context, bucket, key string) (*ObjectInfo, error)
}
