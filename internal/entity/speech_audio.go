package entity

import (
	"time"
)

// SpeechAudio is one synthesized phrase, cached so repeated phrases
// ("鼠一鼠有幾個？", the numerals) are only sent to the TTS provider once.
type SpeechAudio struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CacheKey    string    `gorm:"uniqueIndex;size:64;not null" json:"cache_key"` // sha256(lang:text), first 16 bytes
	Lang        string    `gorm:"size:20;not null" json:"lang"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	ContentType string    `gorm:"size:50;not null" json:"content_type"`
	Audio       []byte    `gorm:"not null" json:"-"`
	HitCount    int       `gorm:"default:0" json:"hit_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SpeechAudio) TableName() string {
	return "tts_audio_cache"
}
