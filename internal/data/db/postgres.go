package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devikaharshey/pybot-backend/internal/domain"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

type Config struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

func New(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	log.Info("Connecting to Postgres...", "host", cfg.Host, "db", cfg.Name)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return gdb, nil
}

func AutoMigrate(gdb *gorm.DB, log *logger.Logger) error {
	log.Info("Auto migrating tables...")
	if err := gdb.AutoMigrate(
		&domain.ChatSession{},
		&domain.QuizRecord{},
		&domain.ScoreAttempt{},
	); err != nil {
		log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
