package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/config"
	"github.com/oksasatya/securetask/internal/application"
	"github.com/oksasatya/securetask/internal/domain/entity"
	pginfra "github.com/oksasatya/securetask/internal/infrastructure/postgres"
	"github.com/oksasatya/securetask/pkg/helpers"
)

// seed creates the admin account from SEED_ADMIN_* through AuthService, so
// the same validation and hashing apply as for registration.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	if cfg.StoreDriver != config.StoreDriverPostgres {
		logger.Fatal("seed requires STORE_DRIVER=postgres")
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	svc := application.NewAuthService(
		pginfra.NewUserRepository(pool),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
		logger,
		true,
	)

	u, err := svc.Register(ctx, application.RegisterInput{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     string(entity.RoleAdmin),
	})
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		existing, ferr := svc.FindByEmail(ctx, cfg.SeedAdminEmail)
		if ferr != nil {
			logger.Fatalf("lookup existing admin: %v", ferr)
		}
		logger.WithFields(logrus.Fields{"user_id": existing.ID, "role": existing.Role}).Info("admin already exists")
	case err != nil:
		logger.Fatalf("seed admin: %v", err)
	default:
		logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("admin seeded")
	}
}
