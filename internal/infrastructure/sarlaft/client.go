// Package sarlaft adaptador HTTP del proveedor de listas restrictivas.
package sarlaft

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
)

var _ ports.ScreeningProvider = (*Client)(nil)

// maxBody límite de lectura de la respuesta del proveedor.
const maxBody = 1 << 20

// ErrNoURL el endpoint del proveedor no está configurado.
var ErrNoURL = errors.New("sarlaft: SARLAFT_VALIDATE_URL no configurado")

// Client cliente del endpoint de validación. Usa net/http directamente; el
// proveedor no publica SDK.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient timeout <= 0 usa 30 s.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Validate envía la consulta. Cualquier status HTTP se devuelve como respuesta;
// err solo cuando no hubo respuesta (red, timeout, cancelación).
func (c *Client) Validate(ctx context.Context, in ports.ScreeningRequest) (*ports.ScreeningResponse, error) {
	if c.url == "" {
		return nil, ErrNoURL
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("sarlaft: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sarlaft: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sarlaft: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("sarlaft: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("sarlaft: leer respuesta: %w", err)
	}
	return &ports.ScreeningResponse{Status: resp.StatusCode, Body: normalizeBody(raw)}, nil
}

// normalizeBody cuerpo vacío = null; texto no JSON se envuelve en {"raw": ...}.
func normalizeBody(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(trimmed)})
	return wrapped
}
