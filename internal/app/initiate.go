package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgdb"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gofta/internal/pkg/pkguid"
)

func (a *App) initConfig() error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	path := a.options.ConfigPath
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := pkgconfig.NewViper(path, Defaults())
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
	a.addResource("Config", func(context.Context) error {
		return a.config.Close()
	})

	return nil
}

// defaultConfigPath returns the container path, the local path with LOCAL=true,
// or "" (defaults and environment only) when neither file exists.
func defaultConfigPath() string {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func (a *App) initLibraries() error {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	node, err := pkguid.NewSnowflake()
	if err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}
	a.snowflake = node

	return nil
}

func (a *App) initResources() error {
	switch driver := a.config.GetString("database.driver"); driver {
	case "", "memory":
		return nil
	case "sqlite":
		db, err := pkgdb.OpenSQLite(pkgdb.SQLiteConfig{
			Path:    a.config.GetString("database.sqlite.path"),
			LogMode: a.config.GetBool("database.log_mode"),
		})
		if err != nil {
			return err
		}

		a.db = db
		a.addResource("Database", func(context.Context) error {
			return pkgdb.Close(db)
		})
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (a *App) initHTTPServer() error {
	if a.options.WithoutHTTP {
		return nil
	}

	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}
