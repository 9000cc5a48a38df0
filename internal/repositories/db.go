// Package repositories provides the data access layer: gorm-backed
// persistence for merchants, wallets, ledger entries and source records,
// plus the redis snapshot cache.
package repositories

import (
	"fmt"
	"log"
	"time"

	"paycore/internal/config"
	"paycore/internal/models"
	"paycore/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// Cache is the shared wallet snapshot cache.
var Cache *cache.SnapshotCache

// InitDB connects to postgres, configures the pool, runs migrations and
// wires the redis cache.
func InitDB() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "paycore"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)

	// TranslateError turns driver unique-violations into gorm.ErrDuplicatedKey,
	// which the ledger relies on as its idempotency signal.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.AutoMigrate(
		&models.Merchant{},
		&models.MerchantWallet{},
		&models.LedgerEntry{},
		&models.Invoice{},
		&models.PaymentTransfer{},
		&models.WithdrawRequest{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	Cache = cache.NewSnapshotCache(redisClient, 5*time.Minute)

	log.Println("database initialized")
	return nil
}
