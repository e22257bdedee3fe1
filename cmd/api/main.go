package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scorecard.bizops.dev/internal/app"
	"scorecard.bizops.dev/internal/appconf"
	"scorecard.bizops.dev/internal/kpistore"
	"scorecard.bizops.dev/internal/logging"
	"scorecard.bizops.dev/internal/restapi"
	"scorecard.bizops.dev/internal/webui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type serverConfig struct {
	app      appconf.Config
	store    kpistore.Config
	logLevel slog.Level
	pprof    bool
}

func parseConfig(args []string) (serverConfig, error) {
	var cfg serverConfig
	var env, apiKeysFlag, logLevel string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.app.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.app.RateLimit, "rate-limit", 100, "Requests per second per API key; 0 disables limiting")
	fs.StringVar(&cfg.store.Source, "data", kpistore.DummySource, `KPI source: a .csv or .xlsx file, or "dummy"`)
	fs.StringVar(&cfg.store.Sheet, "sheet", "", "Worksheet to read from an .xlsx source (default: first)")
	fs.StringVar(&cfg.store.DBPath, "db", "kpi.db", "SQLite database path")
	fs.BoolVar(&cfg.store.Reimport, "reimport", false, "Replace stored rows with the source on startup")
	fs.StringVar(&cfg.store.ChartsPath, "charts", "", "YAML chart catalog (default: built-in)")
	fs.DurationVar(&cfg.store.ReloadInterval, "reload-interval", 0, "Poll the source file for changes (0 disables)")
	fs.Int64Var(&cfg.store.DummySeed, "seed", 1, "Seed for the dummy dataset")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.app.Verbose, "verbose", false, "Log SQL setup details")
	fs.BoolVar(&cfg.pprof, "pprof", false, "Expose /debug/pprof/")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.app.Env = appconf.EnvFlagToEnvironment(env)
	cfg.store.Env = cfg.app.Env
	cfg.store.Verbose = cfg.app.Verbose

	for _, key := range strings.Split(apiKeysFlag, ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.app.ApiKeys = append(cfg.app.ApiKeys, key)
		}
	}
	if len(cfg.app.ApiKeys) == 0 {
		return cfg, errors.New("at least one API key is required")
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return cfg, err
	}
	cfg.logLevel = level

	return cfg, nil
}

// buildHandler wires the API routes, and outside production the debug pages,
// behind the middleware chain.
func buildHandler(application *app.Application, api *restapi.RestAPI, pprof bool) http.Handler {
	var extra []func(*http.ServeMux)
	if application.Config.Env != appconf.Production {
		ui := &webui.WebUI{Application: application}
		extra = append(extra, ui.SetWebUIRoutes)
	}
	if pprof {
		extra = append(extra, restapi.RegisterPprofHandlers)
	}
	return api.Handler(extra...)
}

func run(args []string, out io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(out, cfg.logLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := kpistore.InitManager(ctx, cfg.store, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize KPI store", err)
		return err
	}
	defer manager.Shutdown()

	application := &app.Application{
		Config:      cfg.app,
		StoreConfig: cfg.store,
		Logger:      logger,
		KpiManager:  manager,
	}
	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.app.Port),
		Handler:      buildHandler(application, api, cfg.pprof),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.app.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
