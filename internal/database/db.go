package database

import (
	"fmt"
	"time"

	"e-kasir/internal/config"
	"e-kasir/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the backing store. A MySQL DSN wins when configured;
// otherwise the register runs off a local SQLite file, which is the
// per-device store this application was designed around.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	log := zap.L()

	var db *gorm.DB
	var err error

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if cfg.DSN != "" {
		// Wait for MySQL to come up, the way a register boots faster
		// than the database box it shares a counter with.
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(mysql.Open(cfg.DSN), gormCfg)
			if err == nil {
				break
			}
			log.Warn("database not ready, retrying",
				zap.Int("attempt", i+1),
				zap.Error(err))
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		log.Info("connected to MySQL")
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("using local SQLite store", zap.String("path", cfg.SQLitePath))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.AppSettings{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if err := SeedProducts(db); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	return db, nil
}
