package initialize

import (
	"collector/config"
	"collector/internal/database"
	"collector/internal/logger"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database handle", err)
	}

	applied, err := database.Migrate(sqlDB)
	if err != nil {
		return log.Err("failed to apply migrations", err)
	}

	log.Info("Table initialization complete", "applied", applied)
	return nil
}
