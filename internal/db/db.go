package db

import (
	"errors"
	"log"

	"blogify/internal/comment"
	"blogify/internal/config"
	"blogify/internal/post"
	"blogify/internal/user"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to Postgres when a DSN is configured, otherwise to SQLite,
// and migrates the blog schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case cfg.Postgres.DSN != "":
		dialector = postgres.Open(cfg.Postgres.DSN)
	case cfg.SQLite.Path != "":
		dialector = sqlite.Open(cfg.SQLite.Path)
	default:
		return nil, errors.New("no database configured")
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Printf("[DB] connected (%s) and migrated", dialector.Name())
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &post.Post{}, &comment.Comment{})
}
