package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// LockTimeout bounds how long a session waits on a row lock. Order
	// placement holds row locks on several products at once, so the wait
	// ceiling has to be explicit.
	LockTimeout time.Duration
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func ConnectDB(cfg *Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to access sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if cfg.LockTimeout > 0 {
		if err := db.Exec(fmt.Sprintf("SET lock_timeout = '%dms'", cfg.LockTimeout.Milliseconds())).Error; err != nil {
			log.Warn("failed to set lock_timeout", zap.Error(err))
		}
	}

	log.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("db", cfg.Name),
	)
	return db
}

// ConnectDBForMigration opens a single-connection handle so DDL runs serially.
func ConnectDBForMigration(cfg *Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("failed to connect to database for migration", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to access sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func CloseDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to access sql.DB on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
		return
	}
	log.Info("database connection closed")
}
