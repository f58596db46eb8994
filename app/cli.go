// Package app is the main cmd app
package app

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkrivushin/libcat/config"
	"github.com/mkrivushin/libcat/logger"
	"github.com/mkrivushin/libcat/repo"
	"github.com/mkrivushin/libcat/service"
	"github.com/mkrivushin/libcat/web"
)

func CLI(args []string) int {
	var app appEnv
	if err := app.fromArgs(args); err != nil {
		fmt.Println(err)
		return 2
	}

	if err := app.run(); err != nil {
		logger.Error("Runtime error", "error", err)
		return 1
	}
	return 0
}

type appEnv struct {
	config  *config.Config
	cmd     string
	storage *repo.Repo
	service *service.Service
}

func (app *appEnv) fromArgs(args []string) error {
	fl := flag.NewFlagSet("libcat", flag.ContinueOnError)

	// Load default config
	cfg := config.Load()

	// CLI flags override environment variables
	port := cfg.Server.Port
	dbPath := cfg.Database.Path

	fl.IntVar(&port, "p", cfg.Server.Port, "Port number")
	fl.StringVar(&dbPath, "d", cfg.Database.Path, "Path to catalog database")

	if err := fl.Parse(args); err != nil {
		fl.Usage()
		return err
	}

	if fl.NArg() < 1 {
		return fmt.Errorf("please provide a command to run: serve, init or seed")
	}

	app.cmd = fl.Arg(0)
	app.config = cfg
	app.config.Server.Port = port
	app.config.Database.Path = dbPath

	return nil
}

func (app *appEnv) run() error {
	// Initialize logger
	logger.Init(app.config.LogLevel)

	storage, err := repo.GetStorageWithConfig(app.config.Database.Path, app.config)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	app.storage = storage
	app.service = service.New(storage, app.config.Catalog)

	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("Error closing storage", "error", err)
		}
	}()

	switch app.cmd {
	case "serve":
		return app.serve()
	case "init":
		// Schema creation happens on open; nothing more to do
		logger.Info("Catalog database initialized", "path", app.config.Database.Path)
		return nil
	case "seed":
		return app.seed()
	default:
		return fmt.Errorf("unknown command %s", app.cmd)
	}
}

func (app *appEnv) serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, err := web.NewHandler(app.service)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(app.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(app.config.Server.IdleTimeout) * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "port", app.config.Server.Port,
			"url", fmt.Sprintf("http://localhost:%d", app.config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for a shutdown signal or a listener failure
		<-ctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
