package store

import (
	"errors"
	"time"

	"joydao/models"
)

// ErrConflict maps the underlying duplicate-key condition.
var ErrConflict = errors.New("store: uniqueness conflict")

// UserUpsert carries the fields merged into a user row on upsert. Nil
// pointers leave the stored value untouched.
type UserUpsert struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	LastSignedIn *time.Time
}

// PostUpdate is a partial update of a blog post. Nil fields are retained.
// PublishedAt uses SetPublishedAt to distinguish "leave alone" from
// "clear to NULL".
type PostUpdate struct {
	Title          *string
	Slug           *string
	Content        *string
	Excerpt        *string
	Status         *string
	PublishedAt    *time.Time
	SetPublishedAt bool
}

// Store is the uniform record-access API over either the live relational
// connection or the in-memory fallback. Reads report "not found" as a nil
// record (or empty slice), never as an error.
type Store interface {
	UpsertUser(u UserUpsert) error
	GetUserByOpenID(openID string) (*models.User, error)

	CreateContactMessage(m *models.ContactMessage) error
	GetContactMessages() ([]models.ContactMessage, error)

	SubscribeToNewsletter(email string) error
	GetNewsletterSubscriptions() ([]models.NewsletterSubscription, error)
	UnsubscribeFromNewsletter(email string) error

	CreateBlogPost(p *models.BlogPost) error
	GetBlogPostByID(id int) (*models.BlogPost, error)
	GetBlogPostBySlug(slug string) (*models.BlogPost, error)
	GetPublishedBlogPosts() ([]models.BlogPost, error)
	GetAllBlogPosts() ([]models.BlogPost, error)
	UpdateBlogPost(id int, update PostUpdate) error
	DeleteBlogPost(id int) (bool, error)

	CreateBlogTag(name, slug string) (*models.BlogTag, error)
	GetAllBlogTags() ([]models.BlogTag, error)
	AddTagToPost(postID, tagID int) error
	RemoveTagFromPost(postID, tagID int) error
	GetTagsForPost(postID int) ([]models.BlogTag, error)
}
