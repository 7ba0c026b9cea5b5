package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/onboarding-pagadores/internal/application/access"
	"github.com/jhoicas/onboarding-pagadores/internal/application/auth"
	"github.com/jhoicas/onboarding-pagadores/internal/application/backoffice"
	"github.com/jhoicas/onboarding-pagadores/internal/application/onboarding"
	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/application/sarlaft"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/memory"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/onboarding-pagadores/internal/infrastructure/pdf"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/postgres"
	sarlaftclient "github.com/jhoicas/onboarding-pagadores/internal/infrastructure/sarlaft"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/onboarding-pagadores/internal/interfaces/http"
	"github.com/jhoicas/onboarding-pagadores/pkg/config"
	"github.com/jhoicas/onboarding-pagadores/pkg/jwt"
	"github.com/jhoicas/onboarding-pagadores/pkg/logger"
)

// backend repositorios y transacciones según STORE_DRIVER.
type backend struct {
	repos ports.Repos
	tx    ports.TxRunner
	ping  httpRouter.Pinger
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer be.close()

	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("verificador de tokens")
	}

	presigner, err := storage.NewPresigner(cfg.S3, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador S3")
	}
	if !cfg.S3.HasCredentials() {
		log.Warn().Msg("credenciales AWS ausentes: la firma de URLs responderá CONFIG_ERROR")
	}

	// La verificación del objeto es opcional: sin cliente S3 se confirma sin HEAD.
	var inspector ports.ObjectInspector
	if s3Inspector, err := storage.NewS3Inspector(ctx, cfg.S3); err != nil {
		log.Warn().Err(err).Msg("cliente S3 no disponible; confirmación sin verificación")
	} else {
		inspector = s3Inspector
	}

	var provider ports.ScreeningProvider
	if cfg.Sarlaft.ValidateURL != "" {
		provider = sarlaftclient.NewClient(cfg.Sarlaft.ValidateURL, cfg.Sarlaft.Timeout)
	} else {
		log.Warn().Msg("SARLAFT_VALIDATE_URL vacío: las consultas responderán CONFIG_ERROR")
	}

	prom := metrics.New()
	zl := log.Zerolog()

	sarlaftUC := sarlaft.NewUseCase(sarlaft.Deps{
		Repos:          be.repos,
		Provider:       provider,
		Metrics:        prom,
		Logger:         zl,
		ProviderUserID: cfg.Sarlaft.UserID,
		AutoTimeout:    cfg.Sarlaft.Timeout,
	})
	var screener onboarding.Screener
	if cfg.Sarlaft.AutoScreen && provider != nil {
		screener = sarlaftUC
	}
	onboardingUC := onboarding.NewUseCase(onboarding.Deps{
		Repos:     be.repos,
		Tx:        be.tx,
		Presigner: presigner,
		Inspector: inspector,
		Screener:  screener,
		Metrics:   prom,
		Logger:    zl,
		KeyPrefix: cfg.S3.KeyPrefix,
	})
	backofficeUC := backoffice.NewUseCase(backoffice.Deps{
		Repos:   be.repos,
		Tx:      be.tx,
		PDF:     infrapdf.NewExpedienteGenerator(bogota()),
		Metrics: prom,
		Logger:  zl,
	})
	authUC := auth.NewUseCase(be.repos, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(prom.Middleware())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log.Component("access")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Onboarding Pagadores API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		Onboarding:  onboardingUC,
		Backoffice:  backofficeUC,
		Sarlaft:     sarlaftUC,
		Auth:        authUC,
		Verifier:    verifier,
		AdminChecker: httpRouter.AdminCheckerFunc(func(ctx context.Context, id string) (bool, error) {
			return access.IsAdmin(ctx, be.repos.Usuarios, id)
		}),
		Store:   be.ping,
		Metrics: prom,
		Logger:  log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Tamizajes en curso terminan antes de cerrar el pool
	sarlaftUC.Wait()

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &backend{repos: store.Repos(), tx: store, ping: store, close: func() {}}, nil
	}

	dsn := cfg.DB.ConnectionString()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(dsn); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	runner := postgres.NewTxRunner(pool)
	return &backend{repos: runner.Repos(), tx: runner, ping: runner, close: pool.Close}, nil
}

func newVerifier(ctx context.Context, cfg config.AuthConfig) (*jwt.Verifier, error) {
	if cfg.JWKSURL != "" {
		return jwt.NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.Issuer)
	}
	return jwt.NewHS256Verifier(cfg.JWTSecret, cfg.Issuer)
}

// bogota zona para fechas del expediente; UTC si el sistema no trae tzdata.
func bogota() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.UTC
	}
	return loc
}
