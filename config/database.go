package config

import (
	"fmt"
	"time"

	"PlannerGo/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the MySQL connection and runs migrations.
func InitDB(config Config) error {
	dsn := config.GetDBConnString()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrateDB(); err != nil {
		return err
	}

	return nil
}

func migrateDB() error {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Goal{},
		&models.Task{},
		&models.Blueprint{},
		&models.Reflection{},
		&models.ReportSummary{},
	)
	if err != nil {
		return fmt.Errorf("database migration failed: %v", err)
	}
	return nil
}
