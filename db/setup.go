package db

import (
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectWorker{},
		&models.ProjectUpdate{},
		&models.ProjectSupplier{},
		&models.ProjectTimeline{},
		&models.RiskAnalysis{},
		&models.ChatRoom{},
		&models.Message{},
	}

	migrator := DB.Migrator()

	for _, model := range tables {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
