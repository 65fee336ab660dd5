package database

import (
	"path/filepath"
	"testing"

	"github.com/dd13556li/count/internal/entity"
	"github.com/spf13/viper"
)

func TestDialectorSelectsDriver(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: "sqlite", name: "sqlite"},
		{driver: "postgres", name: "postgres"},
		{driver: "mysql", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			v := viper.New()
			v.Set("database.driver", tt.driver)
			d, err := Dialector(v)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if d.Name() != tt.name {
				t.Fatalf("dialector = %q, want %q", d.Name(), tt.name)
			}
		})
	}
}

func TestMigrateCreatesSpeechCache(t *testing.T) {
	v := viper.New()
	v.Set("database.driver", "sqlite")
	v.Set("database.path", filepath.Join(t.TempDir(), "test.db"))

	db := New(v)
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	if !db.Migrator().HasTable(&entity.SpeechAudio{}) {
		t.Fatal("tts_audio_cache was not created")
	}
}
