// Seeds the default admin account, the sample catalog, and a handful of
// demo orders so the analytics dashboard has data out of the box. Safe
// to run repeatedly: existing rows are left untouched.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/pkg/config"
	"github.com/kasmetics/storefront/pkg/db"
	"github.com/kasmetics/storefront/pkg/db/models"
	"github.com/kasmetics/storefront/pkg/enums"
	"github.com/kasmetics/storefront/pkg/logger"
	"github.com/kasmetics/storefront/pkg/security"
)

const (
	adminEmail    = "admin@kasmetics.com"
	adminPassword = "admin123"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB()

	admin, err := seedAdmin(ctx, conn, cfg.Password, logg)
	if err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
		os.Exit(1)
	}

	if err := seedProducts(ctx, conn, logg); err != nil {
		logg.Error(ctx, "failed to seed products", err)
		os.Exit(1)
	}

	if err := seedOrders(ctx, conn, admin.ID, logg); err != nil {
		logg.Error(ctx, "failed to seed orders", err)
		os.Exit(1)
	}

	logg.Info(ctx, "database seeded")
}

func seedAdmin(ctx context.Context, conn *gorm.DB, pwCfg config.PasswordConfig, logg *logger.Logger) (*models.User, error) {
	var existing models.User
	err := conn.WithContext(ctx).Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(adminPassword, pwCfg)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
		IsActive:     true,
	}
	if err := conn.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}

	logg.Info(ctx, "admin user created")
	return admin, nil
}

func seedProducts(ctx context.Context, conn *gorm.DB, logg *logger.Logger) error {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []models.Product{
		{
			ID:          uuid.New(),
			Name:        "Hydrating Face Serum",
			Description: "Premium hydrating serum for all skin types",
			PriceCents:  4599,
			Category:    "Skincare",
			Brand:       "Kasmetics",
			Featured:    true,
			Bestseller:  true,
			Sales:       156,
		},
		{
			ID:          uuid.New(),
			Name:        "Matte Lipstick Set",
			Description: "Long-lasting matte lipstick in 6 beautiful shades",
			PriceCents:  2999,
			Category:    "Makeup",
			Brand:       "Kasmetics",
			Featured:    true,
			Sales:       89,
		},
		{
			ID:          uuid.New(),
			Name:        "Full Coverage Foundation",
			Description: "Buildable coverage foundation for flawless skin",
			PriceCents:  3850,
			Category:    "Makeup",
			Brand:       "Kasmetics",
			Sales:       134,
		},
		{
			ID:          uuid.New(),
			Name:        "Vitamin C Brightening Cream",
			Description: "Brightening cream with vitamin C and antioxidants",
			PriceCents:  5200,
			Category:    "Skincare",
			Brand:       "Kasmetics",
			Featured:    true,
			Sales:       67,
		},
	}

	if err := conn.WithContext(ctx).Create(&samples).Error; err != nil {
		return err
	}

	logg.Info(ctx, "sample products created")
	return nil
}

func seedOrders(ctx context.Context, conn *gorm.DB, userID uuid.UUID, logg *logger.Logger) error {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	orders := []models.Order{
		{ID: uuid.New(), UserID: userID, TotalCents: 4599},
		{ID: uuid.New(), UserID: userID, TotalCents: 7598},
		{ID: uuid.New(), UserID: userID, TotalCents: 5200},
	}
	if err := conn.WithContext(ctx).Create(&orders).Error; err != nil {
		return err
	}

	logg.Info(ctx, "demo orders created")
	return nil
}
