package database

import (
	"github.com/dd13556li/count/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.SpeechAudio{},
	)
}
