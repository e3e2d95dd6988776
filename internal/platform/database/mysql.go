package database

import (
	"fmt"
	"time"

	"github.com/pravaah/backend/internal/domain/comments"
	"github.com/pravaah/backend/internal/domain/likes"
	"github.com/pravaah/backend/internal/domain/playlists"
	"github.com/pravaah/backend/internal/domain/tweets"
	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/internal/domain/videos"
	"github.com/pravaah/backend/internal/platform/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitMySQL(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing MySQL database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error verifying database connection: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.PasswordReset{},
		&users.Subscription{},
		&users.WatchHistoryEntry{},
		&videos.Video{},
		&comments.Comment{},
		&tweets.Tweet{},
		&likes.Like{},
		&playlists.Playlist{},
		&playlists.PlaylistVideo{},
	)
}
