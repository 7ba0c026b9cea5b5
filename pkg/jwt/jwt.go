// Package jwt verifica los tokens emitidos por el proveedor de sesión externo.
// Acepta HS256 con secreto compartido o claves asimétricas publicadas en un JWKS.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const (
	jwksRefreshInterval = 10 * time.Minute
	jwksClientTimeout   = 10 * time.Second
	leeway              = 30 * time.Second
)

var (
	// ErrNoSecret no hay secreto ni JWKS configurado.
	ErrNoSecret = errors.New("jwt: secret vacío")
	// ErrNoSubject el token no identifica al usuario.
	ErrNoSubject = errors.New("jwt: token sin sub")
)

// Claims claims del proveedor de sesión; sub es el id del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier valida firma, expiración y emisor.
type Verifier struct {
	keyfunc func(ctx context.Context) jwt.Keyfunc
	methods []string
	issuer  string
}

// NewHS256Verifier verificador con secreto compartido.
func NewHS256Verifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	key := []byte(secret)
	return &Verifier{
		keyfunc: func(context.Context) jwt.Keyfunc {
			return func(*jwt.Token) (any, error) { return key, nil }
		},
		methods: []string{jwt.SigningMethodHS256.Alg()},
		issuer:  issuer,
	}, nil
}

// NewJWKSVerifier verificador con claves del JWKS; las claves se refrescan en
// segundo plano y el arranque no falla si el JWKS aún no responde.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string) (*Verifier, error) {
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: jwksClientTimeout},
		Ctx:                       ctx,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           jwksRefreshInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("jwt: crear JWKS storage: %w", err)
	}
	k, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("jwt: crear keyfunc: %w", err)
	}
	return NewVerifierWithKeyfunc(k, issuer), nil
}

// NewVerifierWithKeyfunc verificador con un keyfunc ya construido (JWKS en memoria en pruebas).
func NewVerifierWithKeyfunc(k keyfunc.Keyfunc, issuer string) *Verifier {
	return &Verifier{
		keyfunc: k.KeyfuncCtx,
		methods: []string{"RS256", "RS384", "RS512", "ES256", "ES384", "EdDSA"},
		issuer:  issuer,
	}
}

// Parse valida el token y devuelve sus claims.
func (v *Verifier) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc(ctx), opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("jwt: token inválido")
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}
	return claims, nil
}

// Generate firma un token HS256 para desarrollo local y pruebas.
func Generate(secret, subject, email, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
