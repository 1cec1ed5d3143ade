package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-ileso"
	"github.com/goliatone/go-ileso/internal/logging"
	"github.com/goliatone/go-ileso/pkg/config"
	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/renderers/web"
)

func main() {
	flags := config.BindFlags(flag.CommandLine).BindServerFlags()
	configPath := flag.String("config", "", "YAML configuration file")
	templatesDir := flag.String("templates", "", "directory overriding the embedded page template")
	flag.Parse()

	cfg, err := config.Load(*configPath, os.LookupEnv)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flags.Apply(&cfg)

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	app, err := ileso.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	selector, err := web.NewSelector(cfg.Server.Theme, cfg.Server.Variant)
	if err != nil {
		log.Fatalf("Invalid theme: %v", err)
	}
	rendererOpts := []web.RendererOption{
		web.WithRendererBasePath(cfg.Server.BasePath),
		web.WithThemeSelector(selector, cfg.Server.Theme, cfg.Server.Variant),
		web.WithNotice(cfg.Server.Notice),
	}
	if *templatesDir != "" {
		rendererOpts = append(rendererOpts, web.WithTemplatesFS(os.DirFS(*templatesDir)))
	}
	renderer, err := web.NewRenderer(rendererOpts...)
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	handler, err := web.NewHandler(app.Predictor,
		web.WithRenderer(renderer),
		web.WithPresenter(app.Presenter),
		web.WithFormFactory(func() *form.Form { return app.NewForm() }),
		web.WithHighways(app.Highways),
		web.WithBasePath(cfg.Server.BasePath),
		web.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to build handler: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "base_path", cfg.Server.BasePath, "endpoint", app.Predictor.URL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
	}
}
