package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/config"
	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/repository"
	"github.com/taskboard/taskboard-go/internal/seed"
	"github.com/taskboard/taskboard-go/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, envFile string
	var migrate bool

	flagSet := pflag.NewFlagSet("taskboard-seed", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $CONFIG_FILE)")
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flagSet.BoolVar(&migrate, "migrate", true, "apply the bundled schema before seeding")
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

	ctx := context.Background()
	db, err := repository.NewDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := repository.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
	}

	clk := clock.Real()
	tokens := crypto.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry, clk)
	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)

	seeder := seed.New(
		userRepo,
		service.NewAuthService(userRepo, tokens, clk),
		service.NewProjectService(projectRepo, clk),
		service.NewTaskService(projectRepo, repository.NewTaskRepository(db), clk),
		slog.Default(),
	)

	if _, err := seeder.Run(ctx); err != nil {
		return err
	}

	fmt.Printf("Seed complete. Demo user: %s / %s\n", seed.DemoEmail, seed.DemoPassword)
	return nil
}
