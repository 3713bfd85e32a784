package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/config"
	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/handler"
	"github.com/taskboard/taskboard-go/internal/repository"
	"github.com/taskboard/taskboard-go/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, envFile string
	var migrate bool

	flagSet := pflag.NewFlagSet("taskboard-api", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $CONFIG_FILE)")
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flagSet.BoolVar(&migrate, "migrate", false, "apply the bundled schema before serving")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("no .env file found, using environment variables", "path", envFile)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate || cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
		log.Info("schema applied", "driver", cfg.Database.Driver)
	}

	clk := clock.Real()
	tokens := crypto.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry, clk)
	projectRepo := repository.NewProjectRepository(db)

	router := handler.NewRouter(ctx, handler.Deps{
		Auth:          service.NewAuthService(repository.NewUserRepository(db), tokens, clk),
		Projects:      service.NewProjectService(projectRepo, clk),
		Tasks:         service.NewTaskService(projectRepo, repository.NewTaskRepository(db), clk),
		Tokens:        tokens,
		Logger:        log,
		BasePath:      cfg.BasePath,
		CORSOrigins:   cfg.CORS.Origins,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
		TrustProxy:    cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
}
