package database

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by database.driver (postgres or sqlite).
func New(config *viper.Viper) *gorm.DB {
	dialector, err := Dialector(config)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	return db
}

func Dialector(config *viper.Viper) (gorm.Dialector, error) {
	switch driver := config.GetString("database.driver"); driver {
	case "sqlite":
		path := config.GetString("database.path")
		if path == "" {
			path = "count.db"
		}
		return sqlite.Open(path), nil
	case "postgres":
		return postgres.Open(postgresDSN(config)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func postgresDSN(config *viper.Viper) string {
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		config.GetString("database.host"),
		config.GetString("database.username"),
		config.GetString("database.password"),
		config.GetString("database.dbname"),
		config.GetInt("database.port"),
		sslmode,
		timezone,
	)
}
