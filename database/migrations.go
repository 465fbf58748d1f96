package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"joydao/models"
)

func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.ContactMessage{},
		&models.NewsletterSubscription{},
		&models.BlogPost{},
		&models.BlogTag{},
		&models.BlogPostTag{},
	)
	if err != nil {
		log.Error("error running migrations", zap.Error(err))
		return err
	}

	log.Info("migrations completed")
	return nil
}
