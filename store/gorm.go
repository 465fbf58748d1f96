package store

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"joydao/models"
)

// GormStore is the live relational implementation of Store.
type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormStore(db *gorm.DB, log *zap.Logger) *GormStore {
	return &GormStore{db: db, log: log}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *GormStore) fail(op string, err error) error {
	s.log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return err
}

func (s *GormStore) UpsertUser(u UserUpsert) error {
	var existing models.User
	err := s.db.Where("open_id = ?", u.OpenID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		user := models.User{
			OpenID:       u.OpenID,
			Name:         u.Name,
			Email:        u.Email,
			LoginMethod:  u.LoginMethod,
			Role:         models.RoleUser,
			LastSignedIn: u.LastSignedIn,
		}
		if u.Role != nil {
			user.Role = *u.Role
		}
		if user.LastSignedIn == nil {
			now := time.Now()
			user.LastSignedIn = &now
		}
		if err := s.db.Create(&user).Error; err != nil {
			return s.fail("upsert_user", err)
		}
		return nil
	}
	if err != nil {
		return s.fail("upsert_user", err)
	}

	// Merge: campos nil mantem o valor existente
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.LoginMethod != nil {
		updates["login_method"] = *u.LoginMethod
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.LastSignedIn != nil {
		updates["last_signed_in"] = *u.LastSignedIn
	} else {
		updates["last_signed_in"] = time.Now()
	}

	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return s.fail("upsert_user", err)
	}
	return nil
}

func (s *GormStore) GetUserByOpenID(openID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("open_id = ?", openID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("get_user", err)
	}
	return &user, nil
}

func (s *GormStore) CreateContactMessage(m *models.ContactMessage) error {
	if err := s.db.Create(m).Error; err != nil {
		return s.fail("create_contact_message", err)
	}
	return nil
}

func (s *GormStore) GetContactMessages() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, s.fail("get_contact_messages", err)
	}
	return messages, nil
}

func (s *GormStore) SubscribeToNewsletter(email string) error {
	var existing models.NewsletterSubscription
	err := s.db.Where("email = ?", email).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		sub := models.NewsletterSubscription{
			Email:        email,
			IsActive:     true,
			SubscribedAt: time.Now(),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			if isDuplicate(err) {
				// inscrito em paralelo: reativar
				return s.reactivate(email)
			}
			return s.fail("subscribe_newsletter", err)
		}
		return nil
	}
	if err != nil {
		return s.fail("subscribe_newsletter", err)
	}

	return s.reactivate(email)
}

func (s *GormStore) reactivate(email string) error {
	err := s.db.Model(&models.NewsletterSubscription{}).
		Where("email = ?", email).
		Update("is_active", true).Error
	if err != nil {
		return s.fail("subscribe_newsletter", err)
	}
	return nil
}

func (s *GormStore) GetNewsletterSubscriptions() ([]models.NewsletterSubscription, error) {
	var subs []models.NewsletterSubscription
	if err := s.db.Where("is_active = ?", true).Find(&subs).Error; err != nil {
		return nil, s.fail("get_newsletter_subscriptions", err)
	}
	return subs, nil
}

func (s *GormStore) UnsubscribeFromNewsletter(email string) error {
	err := s.db.Model(&models.NewsletterSubscription{}).
		Where("email = ?", email).
		Update("is_active", false).Error
	if err != nil {
		return s.fail("unsubscribe_newsletter", err)
	}
	return nil
}

func (s *GormStore) CreateBlogPost(p *models.BlogPost) error {
	if err := s.db.Create(p).Error; err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return s.fail("create_blog_post", err)
	}
	return nil
}

func (s *GormStore) GetBlogPostByID(id int) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.db.First(&post, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("get_blog_post", err)
	}
	return &post, nil
}

func (s *GormStore) GetBlogPostBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.db.Where("slug = ?", slug).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("get_blog_post_by_slug", err)
	}
	return &post, nil
}

func (s *GormStore) GetPublishedBlogPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := s.db.Where("status = ?", models.StatusPublished).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, s.fail("get_published_blog_posts", err)
	}
	return posts, nil
}

func (s *GormStore) GetAllBlogPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, s.fail("get_all_blog_posts", err)
	}
	return posts, nil
}

func (s *GormStore) UpdateBlogPost(id int, update PostUpdate) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Slug != nil {
		updates["slug"] = *update.Slug
	}
	if update.Content != nil {
		updates["content"] = *update.Content
	}
	if update.Excerpt != nil {
		updates["excerpt"] = *update.Excerpt
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.SetPublishedAt {
		updates["published_at"] = update.PublishedAt
	}

	// Updates em id inexistente afeta zero linhas: no-op, sem erro
	err := s.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return s.fail("update_blog_post", err)
	}
	return nil
}

func (s *GormStore) DeleteBlogPost(id int) (bool, error) {
	// remove as associacoes de tags antes do post
	if err := s.db.Where("post_id = ?", id).Delete(&models.BlogPostTag{}).Error; err != nil {
		return false, s.fail("delete_blog_post", err)
	}

	result := s.db.Delete(&models.BlogPost{}, id)
	if result.Error != nil {
		return false, s.fail("delete_blog_post", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) CreateBlogTag(name, slug string) (*models.BlogTag, error) {
	var existing models.BlogTag
	err := s.db.Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, s.fail("create_blog_tag", err)
	}

	tag := models.BlogTag{Name: name, Slug: slug}
	if err := s.db.Create(&tag).Error; err != nil {
		if isDuplicate(err) {
			// criada em paralelo: devolve a existente
			if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
				return &existing, nil
			}
		}
		return nil, s.fail("create_blog_tag", err)
	}
	return &tag, nil
}

func (s *GormStore) GetAllBlogTags() ([]models.BlogTag, error) {
	var tags []models.BlogTag
	if err := s.db.Find(&tags).Error; err != nil {
		return nil, s.fail("get_all_blog_tags", err)
	}
	return tags, nil
}

func (s *GormStore) AddTagToPost(postID, tagID int) error {
	var existing models.BlogPostTag
	err := s.db.Where("post_id = ? AND tag_id = ?", postID, tagID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return s.fail("add_tag_to_post", err)
	}

	link := models.BlogPostTag{PostID: postID, TagID: tagID}
	if err := s.db.Create(&link).Error; err != nil {
		return s.fail("add_tag_to_post", err)
	}
	return nil
}

func (s *GormStore) RemoveTagFromPost(postID, tagID int) error {
	err := s.db.Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&models.BlogPostTag{}).Error
	if err != nil {
		return s.fail("remove_tag_from_post", err)
	}
	return nil
}

func (s *GormStore) GetTagsForPost(postID int) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	err := s.db.Table("blog_tags").
		Joins("INNER JOIN blog_post_tags ON blog_tags.id = blog_post_tags.tag_id").
		Where("blog_post_tags.post_id = ?", postID).
		Find(&tags).Error
	if err != nil {
		return nil, s.fail("get_tags_for_post", err)
	}
	return tags, nil
}
