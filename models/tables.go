package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusDraft     = "draft"
	StatusPublished = "published"
)

type User struct {
	ID           int        `gorm:"primary_key;autoIncrement" json:"id"`
	OpenID       string     `gorm:"unique;not null;index" json:"openId"`
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	LoginMethod  *string    `json:"loginMethod"`
	Role         string     `gorm:"not null;default:user" json:"role"`
	LastSignedIn *time.Time `json:"lastSignedIn"`
}

type ContactMessage struct {
	ID        int       `gorm:"primary_key;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewsletterSubscription struct {
	ID           int       `gorm:"primary_key;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

type BlogPost struct {
	ID          int        `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"unique;not null;index" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     *string    `gorm:"type:text" json:"excerpt"`
	Status      string     `gorm:"not null;default:draft;index" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type BlogTag struct {
	ID   int    `gorm:"primary_key;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"unique;not null;index" json:"slug"`
}

type BlogPostTag struct {
	ID     int `gorm:"primary_key;autoIncrement" json:"-"`
	PostID int `gorm:"not null;index" json:"postId"`
	TagID  int `gorm:"not null;index" json:"tagId"`
}
