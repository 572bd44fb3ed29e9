package seed

import (
	"collector/config"
	"collector/internal/logger"

	. "collector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const demoDefinition = `{"demo-definition":{"project":"Demo","questions":[` +
	`{"id":1,"text":"Was the task easy to complete?"},` +
	`{"id":2,"text":"What would you change?"}],` +
	`"logic":{"1":{"yes":2}}}}`

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	definition := Definition{
		ProjectName: "Demo",
		Payload:     demoDefinition,
	}

	log.Info("Seeding definition", "projectName", definition.ProjectName)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "checksum", "updated_at"}),
	}).Create(&definition).Error
	if err != nil {
		return log.Err("failed to seed definition", err, "projectName", definition.ProjectName)
	}

	return nil
}
