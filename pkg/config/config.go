package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig configuración inconsistente detectada al cargar.
var ErrInvalidConfig = errors.New("configuración inválida")

// Drivers de almacenamiento soportados.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// MaxPresignExpires límite del esquema de firma (7 días).
const MaxPresignExpires = 7 * 24 * time.Hour

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Store   StoreConfig
	Auth    AuthConfig
	S3      S3Config
	Sarlaft SarlaftConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// StoreConfig selecciona la implementación de repositorios.
type StoreConfig struct {
	Driver string // postgres | memory
}

// AuthConfig verificación de tokens del proveedor de sesión.
// Con JWKSURL se aceptan tokens asimétricos; con JWTSecret, HS256.
type AuthConfig struct {
	JWTSecret string
	JWKSURL   string
	Issuer    string
}

// S3Config almacenamiento de objetos y firma de URLs.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // vacío = AWS; con valor se usa path-style (MinIO, LocalStack)
	KeyPrefix       string
	SSE             string // cabecera x-amz-server-side-encryption en PUT; vacío = no se envía
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PresignExpires  time.Duration
}

// HasCredentials indica si hay credenciales para firmar.
func (c S3Config) HasCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// SarlaftConfig proveedor de listas restrictivas.
type SarlaftConfig struct {
	ValidateURL string
	UserID      string
	Timeout     time.Duration
	AutoScreen  bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Credenciales AWS ausentes no impiden arrancar: cada
// firma fallará con error de configuración.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "onboarding-pagadores"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "onboarding"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StorePostgres)),
		},
		Auth: AuthConfig{
			JWTSecret: getString(v, "AUTH_JWT_SECRET", ""),
			JWKSURL:   getString(v, "AUTH_JWKS_URL", ""),
			Issuer:    getString(v, "AUTH_ISSUER", ""),
		},
		S3: S3Config{
			Bucket:          getString(v, "S3_BUCKET", "onboarding-pagadores"),
			Region:          getString(v, "S3_REGION", "us-east-1"),
			Endpoint:        getString(v, "S3_ENDPOINT", ""),
			KeyPrefix:       getString(v, "S3_KEY_PREFIX", "confirming"),
			SSE:             getString(v, "S3_SSE", "AES256"),
			AccessKeyID:     getString(v, "AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "AWS_SECRET_ACCESS_KEY", ""),
			SessionToken:    getString(v, "AWS_SESSION_TOKEN", ""),
			PresignExpires:  time.Duration(getInt(v, "PRESIGN_EXPIRES_SECONDS", 900)) * time.Second,
		},
		Sarlaft: SarlaftConfig{
			ValidateURL: getString(v, "SARLAFT_VALIDATE_URL", ""),
			UserID:      getString(v, "SARLAFT_USER_ID", "agentrobust"),
			Timeout:     time.Duration(getInt(v, "SARLAFT_TIMEOUT_SECONDS", 30)) * time.Second,
			AutoScreen:  getBool(v, "SARLAFT_AUTO_SCREEN", false),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones imposibles.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("%w: STORE_DRIVER=%q (postgres|memory)", ErrInvalidConfig, c.Store.Driver)
	}
	if c.S3.PresignExpires < time.Second || c.S3.PresignExpires > MaxPresignExpires {
		return fmt.Errorf("%w: PRESIGN_EXPIRES_SECONDS debe estar entre 1 y %d", ErrInvalidConfig, int(MaxPresignExpires/time.Second))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: HTTP_PORT=%d", ErrInvalidConfig, c.HTTP.Port)
	}
	if c.Sarlaft.Timeout <= 0 {
		return fmt.Errorf("%w: SARLAFT_TIMEOUT_SECONDS debe ser positivo", ErrInvalidConfig)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return strings.TrimSpace(v.GetString(key))
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
