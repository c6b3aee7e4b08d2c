package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/internal/categories"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/db"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

var seedSet = []models.Category{
	{Name: "Home & Kitchen", Slug: "home-kitchen", Active: true},
	{Name: "Electronics & Tech", Slug: "electronics-tech", Active: true},
	{Name: "Toys", Slug: "toys", Active: true},
	{Name: "Tools", Slug: "tools", Active: true},
	{Name: "Beddings", Slug: "beddings", Active: true},
	{Name: "Gym & Sports", Slug: "gym-sports", Active: true},
	{Name: "Cosmetics", Slug: "cosmetics", Active: true},
	{Name: "Clothing", Slug: "clothing", Active: true},
	{Name: "Garden & Outdoor", Slug: "garden-outdoor", Active: true},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-categories"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-categories",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	repo := categories.NewRepository(dbClient.DB())
	ctx := context.Background()
	for i := range seedSet {
		sortOrder := i + 1
		seedSet[i].SortOrder = &sortOrder
	}

	if err := dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return repo.ReplaceAllTx(tx, seedSet)
	}); err != nil {
		logg.Error(ctx, "failed to seed categories", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "count", len(seedSet)), "categories seeded")
}
