package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/urfave/cli/v3"

	"github.com/magabrotheeeer/watchlist/internal/config"
	"github.com/magabrotheeeer/watchlist/internal/lib/sl"
	"github.com/magabrotheeeer/watchlist/internal/migrations"
	"github.com/magabrotheeeer/watchlist/internal/models"
	"github.com/magabrotheeeer/watchlist/internal/services"
	"github.com/magabrotheeeer/watchlist/internal/storage"
)

// admin — служебная утилита: инициализация схемы, генерация тестовых
// данных и создание учетной записи владельца.
func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app := &cli.Command{
		Name:  "admin",
		Usage: "Maintenance commands for the watchlist service",
		Commands: []*cli.Command{
			initdbCommand(log),
			forgeCommand(log),
			adminCommand(log),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error("command failed", sl.Err(err))
		os.Exit(1)
	}
}

func initdbCommand(log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "initdb",
		Usage: "Create database tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop existing tables before creating",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			const op = "admin.initdb"

			cfg := config.MustLoad()
			db, err := storage.New(cfg.StorageConnectionString)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			defer db.DB.Close()

			if cmd.Bool("drop") {
				if err := migrations.Reset(db.DB, cfg.MigrationsPath); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				log.Info("dropped and recreated tables")
				return nil
			}
			if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("initialized database")
			return nil
		},
	}
}

func forgeCommand(log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "forge",
		Usage: "Generate fake movies",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of movies to generate",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			const op = "admin.forge"

			cfg := config.MustLoad()
			db, err := storage.New(cfg.StorageConnectionString)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			defer db.DB.Close()

			count := cmd.Int("count")
			entries := make([]models.CreateMovieRequest, 0, count)
			for i := 0; i < int(count); i++ {
				entries = append(entries, models.CreateMovieRequest{
					Title: gofakeit.MovieName(),
					Year:  strconv.Itoa(gofakeit.Number(1950, 2023)),
				})
			}

			service := services.NewCatalogService(db, log)
			imported, err := service.BulkImport(ctx, entries)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("generated movies", slog.Int("count", imported))
			return nil
		},
	}
}

func adminCommand(log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create or update the owner account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Usage:    "Login name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Password",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Display name",
				Value: "Owner",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			const op = "admin.admin"

			cfg := config.MustLoad()
			db, err := storage.New(cfg.StorageConnectionString)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			defer db.DB.Close()

			service := services.NewAuthService(db, nil, log)
			uid, err := service.Bootstrap(ctx, cmd.String("name"), cmd.String("username"), cmd.String("password"))
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("owner account ready", slog.String("uid", uid))
			return nil
		},
	}
}
