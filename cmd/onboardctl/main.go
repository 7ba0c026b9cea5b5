package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/postgres"
	"github.com/jhoicas/onboarding-pagadores/internal/infrastructure/storage"
	"github.com/jhoicas/onboarding-pagadores/pkg/config"
	"github.com/jhoicas/onboarding-pagadores/pkg/jwt"
)

var flagDatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Usage:   "DSN de PostgreSQL (por defecto el de la configuración)",
	EnvVars: []string{"DATABASE_URL"},
}

var flagKey = &cli.StringFlag{
	Name:     "key",
	Usage:    "Key del objeto dentro del bucket",
	Required: true,
}

var flagMethod = &cli.StringFlag{
	Name:  "method",
	Value: "GET",
	Usage: "GET o PUT",
}

var flagContentType = &cli.StringFlag{
	Name:  "content-type",
	Value: "application/pdf",
	Usage: "Content-Type firmado (solo PUT)",
}

var flagSubject = &cli.StringFlag{
	Name:     "sub",
	Usage:    "Sujeto del token (ID de usuario)",
	Required: true,
}

var flagEmail = &cli.StringFlag{
	Name:  "email",
	Usage: "Email incluido en el token",
}

var flagTTL = &cli.DurationFlag{
	Name:  "ttl",
	Value: time.Hour,
	Usage: "Vigencia del token",
}

func main() {
	app := &cli.App{
		Name:  "onboardctl",
		Usage: "utilidades de operación del portal de onboarding",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "migraciones del esquema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Flags:  []cli.Flag{flagDatabaseURL},
						Action: migrateAction(func(m *postgres.Migrator) error { return m.Up() }),
					},
					{
						Name:   "down",
						Flags:  []cli.Flag{flagDatabaseURL},
						Action: migrateAction(func(m *postgres.Migrator) error { return m.Down() }),
					},
					{
						Name:  "version",
						Flags: []cli.Flag{flagDatabaseURL},
						Action: migrateAction(func(m *postgres.Migrator) error {
							v, dirty, err := m.Version()
							if err != nil {
								return err
							}
							fmt.Printf("version=%d dirty=%t\n", v, dirty)
							return nil
						}),
					},
				},
			},
			{
				Name:  "presign",
				Usage: "firma una URL de S3 con la configuración actual",
				Flags: []cli.Flag{flagKey, flagMethod, flagContentType},
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					p, err := storage.NewPresigner(cfg.S3, time.Now)
					if err != nil {
						return err
					}
					key := cCtx.String(flagKey.Name)
					var out any
					switch strings.ToUpper(cCtx.String(flagMethod.Name)) {
					case "PUT":
						out, err = p.PresignPut(p.Bucket(), key, cCtx.String(flagContentType.Name))
					case "GET":
						out, err = p.PresignGet(p.Bucket(), key)
					default:
						return fmt.Errorf("método no soportado: %s", cCtx.String(flagMethod.Name))
					}
					if err != nil {
						return err
					}
					return printJSON(out)
				},
			},
			{
				Name:  "token",
				Usage: "emite un token HS256 con AUTH_JWT_SECRET para pruebas locales",
				Flags: []cli.Flag{flagSubject, flagEmail, flagTTL},
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					tok, err := jwt.Generate(cfg.Auth.JWTSecret, cCtx.String(flagSubject.Name),
						cCtx.String(flagEmail.Name), cfg.Auth.Issuer, cCtx.Duration(flagTTL.Name))
					if err != nil {
						return err
					}
					fmt.Println(tok)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateAction(fn func(m *postgres.Migrator) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		dsn := cCtx.String(flagDatabaseURL.Name)
		if dsn == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dsn = cfg.DB.ConnectionString()
		}
		m, err := postgres.NewMigrator(dsn)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			_ = m.Close()
			return err
		}
		return m.Close()
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
