package store

import (
	"sync"
	"time"

	"joydao/models"
)

// MemoryStore is the in-process fallback used when no database file is
// configured or the process runs in the test environment. State lives for
// the lifetime of the process only.
type MemoryStore struct {
	mu sync.Mutex

	users      []models.User
	contacts   []models.ContactMessage
	newsletter []models.NewsletterSubscription
	posts      []models.BlogPost
	tags       []models.BlogTag
	postTags   []models.BlogPostTag

	nextUserID    int
	nextContactID int
	nextSubID     int
	nextPostID    int
	nextTagID     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:    1,
		nextContactID: 1,
		nextSubID:     1,
		nextPostID:    1,
		nextTagID:     1,
	}
}

func (s *MemoryStore) UpsertUser(u UserUpsert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i := range s.users {
		if s.users[i].OpenID != u.OpenID {
			continue
		}
		if u.Name != nil {
			s.users[i].Name = u.Name
		}
		if u.Email != nil {
			s.users[i].Email = u.Email
		}
		if u.LoginMethod != nil {
			s.users[i].LoginMethod = u.LoginMethod
		}
		if u.Role != nil {
			s.users[i].Role = *u.Role
		}
		if u.LastSignedIn != nil {
			s.users[i].LastSignedIn = u.LastSignedIn
		} else {
			s.users[i].LastSignedIn = &now
		}
		return nil
	}

	user := models.User{
		ID:           s.nextUserID,
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
		user.LastSignedIn = &now
	}
	s.nextUserID++
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryStore) GetUserByOpenID(openID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].OpenID == openID {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateContactMessage(m *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextContactID
	s.nextContactID++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.contacts = append(s.contacts, *m)
	return nil
}

func (s *MemoryStore) GetContactMessages() ([]models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// mais recentes primeiro, como no store vivo
	out := make([]models.ContactMessage, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		out = append(out, s.contacts[i])
	}
	return out, nil
}

func (s *MemoryStore) SubscribeToNewsletter(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.newsletter {
		if s.newsletter[i].Email == email {
			s.newsletter[i].IsActive = true
			return nil
		}
	}

	s.newsletter = append(s.newsletter, models.NewsletterSubscription{
		ID:           s.nextSubID,
		Email:        email,
		IsActive:     true,
		SubscribedAt: time.Now(),
	})
	s.nextSubID++
	return nil
}

func (s *MemoryStore) GetNewsletterSubscriptions() ([]models.NewsletterSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.NewsletterSubscription
	for _, sub := range s.newsletter {
		if sub.IsActive {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *MemoryStore) UnsubscribeFromNewsletter(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.newsletter {
		if s.newsletter[i].Email == email {
			s.newsletter[i].IsActive = false
		}
	}
	return nil
}

func (s *MemoryStore) CreateBlogPost(p *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].Slug == p.Slug {
			return ErrConflict
		}
	}

	p.ID = s.nextPostID
	s.nextPostID++
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	s.posts = append(s.posts, *p)
	return nil
}

func (s *MemoryStore) GetBlogPostByID(id int) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			post := s.posts[i]
			return &post, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetBlogPostBySlug(slug string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].Slug == slug {
			post := s.posts[i]
			return &post, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetPublishedBlogPosts() ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.BlogPost
	for _, p := range s.posts {
		if p.Status == models.StatusPublished {
			out = append(out, p)
		}
	}
	sortPostsDesc(out, func(p models.BlogPost) time.Time {
		if p.PublishedAt != nil {
			return *p.PublishedAt
		}
		return p.CreatedAt
	})
	return out, nil
}

func (s *MemoryStore) GetAllBlogPosts() ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.BlogPost, len(s.posts))
	copy(out, s.posts)
	sortPostsDesc(out, func(p models.BlogPost) time.Time { return p.CreatedAt })
	return out, nil
}

func sortPostsDesc(posts []models.BlogPost, key func(models.BlogPost) time.Time) {
	for i := 1; i < len(posts); i++ {
		for j := i; j > 0 && key(posts[j]).After(key(posts[j-1])); j-- {
			posts[j], posts[j-1] = posts[j-1], posts[j]
		}
	}
}

func (s *MemoryStore) UpdateBlogPost(id int, update PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Slug != nil {
		for i := range s.posts {
			if s.posts[i].Slug == *update.Slug && s.posts[i].ID != id {
				return ErrConflict
			}
		}
	}

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if update.Title != nil {
			s.posts[i].Title = *update.Title
		}
		if update.Slug != nil {
			s.posts[i].Slug = *update.Slug
		}
		if update.Content != nil {
			s.posts[i].Content = *update.Content
		}
		if update.Excerpt != nil {
			s.posts[i].Excerpt = update.Excerpt
		}
		if update.Status != nil {
			s.posts[i].Status = *update.Status
		}
		if update.SetPublishedAt {
			s.posts[i].PublishedAt = update.PublishedAt
		}
		s.posts[i].UpdatedAt = time.Now()
		return nil
	}
	// id inexistente: no-op
	return nil
}

func (s *MemoryStore) DeleteBlogPost(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var links []models.BlogPostTag
	for _, l := range s.postTags {
		if l.PostID != id {
			links = append(links, l)
		}
	}
	s.postTags = links

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateBlogTag(name, slug string) (*models.BlogTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tags {
		if s.tags[i].Slug == slug {
			tag := s.tags[i]
			return &tag, nil
		}
	}

	tag := models.BlogTag{ID: s.nextTagID, Name: name, Slug: slug}
	s.nextTagID++
	s.tags = append(s.tags, tag)
	return &tag, nil
}

func (s *MemoryStore) GetAllBlogTags() ([]models.BlogTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.BlogTag, len(s.tags))
	copy(out, s.tags)
	return out, nil
}

func (s *MemoryStore) AddTagToPost(postID, tagID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.postTags {
		if l.PostID == postID && l.TagID == tagID {
			return nil
		}
	}
	s.postTags = append(s.postTags, models.BlogPostTag{PostID: postID, TagID: tagID})
	return nil
}

func (s *MemoryStore) RemoveTagFromPost(postID, tagID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.postTags {
		if l.PostID == postID && l.TagID == tagID {
			s.postTags = append(s.postTags[:i], s.postTags[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) GetTagsForPost(postID int) ([]models.BlogTag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.BlogTag
	for _, l := range s.postTags {
		if l.PostID != postID {
			continue
		}
		for _, t := range s.tags {
			if t.ID == l.TagID {
				out = append(out, t)
			}
		}
	}
	return out, nil
}
