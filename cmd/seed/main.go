package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/stayharbor/stayharbor-backend/internal/rooms"
	"github.com/stayharbor/stayharbor-backend/pkg/config"
	"github.com/stayharbor/stayharbor-backend/pkg/db"
	"github.com/stayharbor/stayharbor-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := rooms.NewRepository(dbClient.DB())
	created, err := rooms.Seed(context.Background(), repo, rooms.DefaultSeed)
	if err != nil {
		logg.Error(context.Background(), "seed failed", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "rooms_created", created)
	logg.Info(ctx, "seed complete")
}
