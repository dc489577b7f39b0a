package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	SQL   *gorm.DB
	Redis *redis.Client // nil when REDIS_ADDR is unset

	log logrus.FieldLogger
}

// InitDB initializes and returns the database connections
func InitDB(cfg *Config, log *logrus.Logger) (*DB, error) {
	sqlDB, err := initSQL(cfg, log)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", cfg.DBDriver)
	}

	db := &DB{SQL: sqlDB, log: log}
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, using in-process rate limiting")
		return db, nil
	}

	redisClient, err := initRedis(cfg)
	if err != nil {
		db.CloseDB()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	db.Redis = redisClient
	log.WithField("addr", cfg.RedisAddr).Info("Successfully connected to Redis!")
	return db, nil
}

// initSQL opens the relational database using GORM
func initSQL(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		dialector = postgres.Open(cfg.PostgresConnStr)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnLifetime)
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.WithField("driver", cfg.DBDriver).Info("Successfully connected to the database!")
	return db, nil
}

// initRedis connects to Redis and verifies the connection
func initRedis(cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			db.log.WithError(err).Error("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			db.log.WithError(err).Error("Error closing database connection")
		} else {
			db.log.Info("Database connection closed.")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.log.WithError(err).Error("Error closing Redis connection")
		} else {
			db.log.Info("Redis connection closed.")
		}
	}
}
