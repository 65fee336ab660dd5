package repository

import (
	"github.com/dd13556li/count/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SpeechAudioRepository interface {
		FindByCacheKey(db *gorm.DB, key string) (*entity.SpeechAudio, error)
		Create(db *gorm.DB, audio *entity.SpeechAudio) error
		IncrementHitCount(db *gorm.DB, key string) error
		Count(db *gorm.DB) (int64, error)
	}

	speechAudioRepository struct {
		db *gorm.DB
	}
)

func NewSpeechAudioRepository(db *gorm.DB) SpeechAudioRepository {
	return &speechAudioRepository{db: db}
}

func (r *speechAudioRepository) FindByCacheKey(db *gorm.DB, key string) (*entity.SpeechAudio, error) {
	if db == nil {
		db = r.db
	}
	var audio entity.SpeechAudio
	err := db.Where("cache_key = ?", key).First(&audio).Error
	if err != nil {
		return nil, err
	}
	return &audio, nil
}

// Create ignores a row that already exists for the same key; two requests
// may synthesize the same phrase concurrently.
func (r *speechAudioRepository) Create(db *gorm.DB, audio *entity.SpeechAudio) error {
	if db == nil {
		db = r.db
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoNothing: true,
	}).Create(audio).Error
}

func (r *speechAudioRepository) IncrementHitCount(db *gorm.DB, key string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.SpeechAudio{}).
		Where("cache_key = ?", key).
		UpdateColumn("hit_count", gorm.Expr("hit_count + ?", 1)).Error
}

func (r *speechAudioRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.SpeechAudio{}).Count(&count).Error
	return count, err
}
