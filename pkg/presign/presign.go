// Package presign genera URLs prefirmadas para el almacenamiento de objetos
// (esquema "canonical request + cadena HMAC", compatible con S3 SigV4 en modo query).
package presign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Algorithm identificador del algoritmo que viaja en X-Amz-Algorithm.
	Algorithm = "AWS4-HMAC-SHA256"
	// UnsignedPayload el cuerpo lo envía después otro actor; no se firma.
	UnsignedPayload = "UNSIGNED-PAYLOAD"
	// DefaultRegion región usada cuando no se configura otra.
	DefaultRegion = "us-east-1"
	// MaxExpires vigencia máxima aceptada por el almacenamiento.
	MaxExpires = 7 * 24 * time.Hour

	service         = "s3"
	terminator      = "aws4_request"
	amzDateFormat   = "20060102T150405Z"
	shortDateFormat = "20060102"
)

var (
	// ErrMissingCredentials falta configuración (no es un error del llamador).
	ErrMissingCredentials = errors.New("presign: credenciales de almacenamiento no configuradas")
	ErrInvalidMethod      = errors.New("presign: método no soportado, se permite PUT o GET")
	ErrEmptyBucket        = errors.New("presign: bucket vacío")
	ErrEmptyKey           = errors.New("presign: key vacía, la URL apuntaría a la raíz del bucket")
	ErrInvalidExpiry      = errors.New("presign: vigencia fuera de rango")
)

// Credentials llaves de acceso al almacenamiento. SessionToken es opcional (credenciales temporales).
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Valid indica si hay llave y secreto.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.AccessKeyID) != "" && strings.TrimSpace(c.SecretAccessKey) != ""
}

// Config parámetros del firmador.
// Endpoint vacío = host virtual de AWS; con Endpoint (MinIO, LocalStack) se usa path-style.
type Config struct {
	Credentials Credentials
	Region      string
	Endpoint    string
	Now         func() time.Time
}

// Request una operación sobre un único objeto.
// Headers son los encabezados que el cliente enviará y que deben quedar firmados (ej. Content-Type).
type Request struct {
	Method  string
	Bucket  string
	Key     string
	Expires time.Duration
	Headers map[string]string
}

// Result URL firmada y encabezados que el cliente debe enviar tal cual.
type Result struct {
	URL           string
	Method        string
	Headers       map[string]string
	SignedHeaders []string
	SignedAt      time.Time
	ExpiresAt     time.Time
}

// Signer firmador sin estado; seguro para uso concurrente.
type Signer struct {
	creds    Credentials
	region   string
	endpoint *url.URL
	now      func() time.Time
}

// New construye el firmador. Las credenciales no se validan aquí: su ausencia
// se reporta en cada Presign como ErrMissingCredentials.
func New(cfg Config) (*Signer, error) {
	s := &Signer{
		creds:  cfg.Credentials,
		region: strings.TrimSpace(cfg.Region),
		now:    cfg.Now,
	}
	if s.region == "" {
		s.region = DefaultRegion
	}
	if s.now == nil {
		s.now = time.Now
	}
	if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
		u, err := url.Parse(ep)
		if err != nil {
			return nil, fmt.Errorf("presign: endpoint inválido: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("presign: endpoint inválido %q", ep)
		}
		s.endpoint = u
	}
	return s, nil
}

// Region región con la que se firma.
func (s *Signer) Region() string { return s.region }

// Presign construye la URL firmada para req.
func (s *Signer) Presign(req Request) (*Result, error) {
	if !s.creds.Valid() {
		return nil, ErrMissingCredentials
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method != "PUT" && method != "GET" {
		return nil, ErrInvalidMethod
	}
	bucket := strings.TrimSpace(req.Bucket)
	if bucket == "" || strings.Contains(bucket, "/") {
		return nil, ErrEmptyBucket
	}
	key := strings.TrimLeft(req.Key, "/")
	if strings.TrimSpace(strings.Trim(key, "/")) == "" {
		return nil, ErrEmptyKey
	}
	if req.Expires < time.Second || req.Expires > MaxExpires {
		return nil, ErrInvalidExpiry
	}

	now := s.now().UTC()
	amzDate := now.Format(amzDateFormat)
	scope := strings.Join([]string{now.Format(shortDateFormat), s.region, service, terminator}, "/")

	scheme, host, uri := s.location(bucket, key)

	headers := canonicalHeaderMap(req.Headers)
	headers["host"] = host
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	signedHeaders := strings.Join(names, ";")

	query := map[string]string{
		"X-Amz-Algorithm":     Algorithm,
		"X-Amz-Credential":    s.creds.AccessKeyID + "/" + scope,
		"X-Amz-Date":          amzDate,
		"X-Amz-Expires":       strconv.FormatInt(int64(req.Expires/time.Second), 10),
		"X-Amz-SignedHeaders": signedHeaders,
	}
	if s.creds.SessionToken != "" {
		query["X-Amz-Security-Token"] = s.creds.SessionToken
	}
	canonicalQuery := canonicalQueryString(query)

	var ch strings.Builder
	for _, name := range names {
		ch.WriteString(name)
		ch.WriteByte(':')
		ch.WriteString(headers[name])
		ch.WriteByte('\n')
	}

	canonicalRequest := strings.Join([]string{
		method,
		uri,
		canonicalQuery,
		ch.String(),
		signedHeaders,
		UnsignedPayload,
	}, "\n")

	stringToSign := strings.Join([]string{
		Algorithm,
		amzDate,
		scope,
		hashHex(canonicalRequest),
	}, "\n")

	signingKey := deriveKey(s.creds.SecretAccessKey, now.Format(shortDateFormat), s.region)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	clientHeaders := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		if strings.EqualFold(k, "host") {
			continue
		}
		clientHeaders[k] = v
	}

	return &Result{
		URL:           scheme + "://" + host + uri + "?" + canonicalQuery + "&X-Amz-Signature=" + signature,
		Method:        method,
		Headers:       clientHeaders,
		SignedHeaders: names,
		SignedAt:      now,
		ExpiresAt:     now.Add(req.Expires),
	}, nil
}

// location resuelve esquema, host y path canónico del objeto.
func (s *Signer) location(bucket, key string) (scheme, host, uri string) {
	if s.endpoint != nil {
		base := strings.TrimRight(s.endpoint.EscapedPath(), "/")
		return s.endpoint.Scheme, s.endpoint.Host, base + "/" + EscapeSegment(bucket) + "/" + EncodeKey(key)
	}
	if s.region == DefaultRegion {
		host = bucket + ".s3.amazonaws.com"
	} else {
		host = bucket + ".s3." + s.region + ".amazonaws.com"
	}
	return "https", host, "/" + EncodeKey(key)
}

func canonicalHeaderMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		name := strings.ToLower(strings.TrimSpace(k))
		if name == "" || name == "host" {
			continue
		}
		out[name] = strings.Join(strings.Fields(v), " ")
	}
	return out
}

func canonicalQueryString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, EscapeSegment(k)+"="+EscapeSegment(params[k]))
	}
	return strings.Join(parts, "&")
}

// deriveKey cadena HMAC: secreto -> fecha -> región -> servicio -> terminador.
func deriveKey(secret, date, region string) []byte {
	k := hmacSHA256([]byte("AWS4"+secret), date)
	k = hmacSHA256(k, region)
	k = hmacSHA256(k, service)
	return hmacSHA256(k, terminator)
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
