package database

import (
	"readly_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate прогоняет AutoMigrate по всем моделям движка.
// uuid_generate_v4 требует расширения uuid-ossp.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Book{},
		&models.Chapter{},
		&models.Purchase{},
		&models.PremiumTrial{},
		&models.PremiumAccessGrant{},
		&models.ChapterUnlock{},
		&models.RewardAction{},
		&models.JournalAccess{},
		&models.DownloadCounter{},
		&models.ProgressRecord{},
	)
}
