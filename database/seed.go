package database

import (
	"time"

	"go.uber.org/zap"

	"joydao/models"
	"joydao/store"
)

// Seed inserts the sample published posts. Running it twice is harmless:
// existing slugs are skipped.
func Seed(s store.Store, log *zap.Logger) error {
	now := time.Now()

	excerpt1 := "Booting up the creative terminal..."
	excerpt2 := "Transmission clear."

	posts := []models.BlogPost{
		{
			Title:       "Welcome to JOYDAO.Z",
			Slug:        "welcome-to-joydao",
			Excerpt:     &excerpt1,
			Content:     "# Hello Agent\n\nThis is the first post served from the live API.\n\n- Contact form and newsletter now hit the live API.\n- Admin features will be enabled next with minimal auth.",
			Status:      models.StatusPublished,
			PublishedAt: &now,
		},
		{
			Title:       "Signals and Systems",
			Slug:        "signals-and-systems",
			Excerpt:     &excerpt2,
			Content:     "# Signals and Systems\n\nWe are online. Expect updates on releases, events, and dev logs.",
			Status:      models.StatusPublished,
			PublishedAt: &now,
		},
	}

	for i := range posts {
		if err := s.CreateBlogPost(&posts[i]); err != nil {
			if err == store.ErrConflict {
				log.Info("seed post already present", zap.String("slug", posts[i].Slug))
				continue
			}
			return err
		}
		log.Info("seed post inserted", zap.String("slug", posts[i].Slug))
	}

	return nil
}
