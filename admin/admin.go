package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joydao/analytics"
	"joydao/auth"
	"joydao/common"
	"joydao/models"
	"joydao/store"
)

// AdminModule is the owner-gated procedure catalog: contact and newsletter
// listings, blog post CRUD, tag management and post/tag association.
type AdminModule struct {
	store     store.Store
	analytics *analytics.AnalyticsModule
	log       *zap.Logger
}

func NewAdminModule(s store.Store, analyticsModule *analytics.AnalyticsModule, log *zap.Logger) *AdminModule {
	return &AdminModule{
		store:     s,
		analytics: analyticsModule,
		log:       log,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine, gate *auth.AuthModule) {
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(gate.RequireOwner())
	{
		adminGroup.GET("/contact/messages", a.contactMessages)
		adminGroup.GET("/newsletter/subscribers", a.newsletterSubscribers)
		adminGroup.POST("/newsletter/unsubscribe", a.unsubscribeEmail)
		adminGroup.GET("/blog/posts", a.allPosts)
		adminGroup.POST("/blog/posts", a.createPost)
		adminGroup.PUT("/blog/posts/:id", a.updatePost)
		adminGroup.DELETE("/blog/posts/:id", a.deletePost)
		adminGroup.GET("/blog/posts/:id/tags", a.postTags)
		adminGroup.POST("/blog/posts/:id/tags", a.addTag)
		adminGroup.DELETE("/blog/posts/:id/tags/:tagId", a.removeTag)
		adminGroup.POST("/blog/tags", a.createTag)
		adminGroup.GET("/stats", a.stats)
	}
}

func (a *AdminModule) contactMessages(c *gin.Context) {
	messages, err := a.store.GetContactMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contact messages"})
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	c.JSON(http.StatusOK, messages)
}

func (a *AdminModule) newsletterSubscribers(c *gin.Context) {
	subs, err := a.store.GetNewsletterSubscriptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscribers"})
		return
	}
	if subs == nil {
		subs = []models.NewsletterSubscription{}
	}
	c.JSON(http.StatusOK, subs)
}

func (a *AdminModule) unsubscribeEmail(c *gin.Context) {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !common.IsValidEmail(request.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	if err := a.store.UnsubscribeFromNewsletter(request.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email unsubscribed successfully"})
}

func (a *AdminModule) allPosts(c *gin.Context) {
	posts, err := a.store.GetAllBlogPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

type postPayload struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`
	Status  string  `json:"status"`
}

func (p *postPayload) validate() string {
	if p.Title == "" {
		return "Title is required"
	}
	if p.Slug == "" {
		return "Slug is required"
	}
	if p.Content == "" {
		return "Content is required"
	}
	if p.Status != models.StatusDraft && p.Status != models.StatusPublished {
		return "Status must be draft or published"
	}
	return ""
}

func (a *AdminModule) createPost(c *gin.Context) {
	var request postPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if msg := request.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// pre-checagem de slug: a constraint do banco fica como rede de seguranca
	if existing, err := a.store.GetBlogPostBySlug(request.Slug); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("A post with slug %q already exists: %q", request.Slug, existing.Title),
		})
		return
	}

	post := models.BlogPost{
		Title:   request.Title,
		Slug:    request.Slug,
		Content: request.Content,
		Excerpt: request.Excerpt,
		Status:  request.Status,
	}
	if request.Status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := a.store.CreateBlogPost(&post); err != nil {
		if err == store.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("A post with slug %q already exists", request.Slug),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post created successfully", "id": post.ID})
}

func (a *AdminModule) updatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var request postPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if msg := request.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if existing, err := a.store.GetBlogPostBySlug(request.Slug); err == nil && existing != nil && existing.ID != id {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("A post with slug %q already exists: %q", request.Slug, existing.Title),
		})
		return
	}

	update := store.PostUpdate{
		Title:          &request.Title,
		Slug:           &request.Slug,
		Content:        &request.Content,
		Excerpt:        request.Excerpt,
		Status:         &request.Status,
		SetPublishedAt: true,
	}
	// publicar carimba o instante da transicao; voltar a rascunho limpa
	if request.Status == models.StatusPublished {
		now := time.Now()
		update.PublishedAt = &now
	}

	if err := a.store.UpdateBlogPost(id, update); err != nil {
		if err == store.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("A post with slug %q already exists", request.Slug),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post updated successfully"})
}

func (a *AdminModule) deletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	deleted, err := a.store.DeleteBlogPost(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog post"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted successfully"})
}

func (a *AdminModule) postTags(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	tags, err := a.store.GetTagsForPost(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tags"})
		return
	}
	if tags == nil {
		tags = []models.BlogTag{}
	}
	c.JSON(http.StatusOK, tags)
}

func (a *AdminModule) addTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var request struct {
		TagID int `json:"tagId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.TagID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag id is required"})
		return
	}

	if err := a.store.AddTagToPost(id, request.TagID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) removeTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}
	tagID, err := strconv.Atoi(c.Param("tagId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag id"})
		return
	}

	if err := a.store.RemoveTagFromPost(id, tagID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to untag post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) createTag(c *gin.Context) {
	var request struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if request.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if request.Slug == "" {
		request.Slug = generateSlug(request.Name)
	}

	// slug duplicada devolve a tag existente, nao e erro
	tag, err := a.store.CreateBlogTag(request.Name, request.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

type topPostStat struct {
	PostID int    `json:"postId"`
	Title  string `json:"title"`
	Count  int64  `json:"count"`
}

func (a *AdminModule) stats(c *gin.Context) {
	if a.analytics == nil {
		c.JSON(http.StatusOK, gin.H{"analyticsEnabled": false})
		return
	}

	visitsByDay := a.analytics.GetVisitsByDay(30)
	topPosts := a.analytics.GetTopPosts(30, 10)

	stats := make([]topPostStat, 0, len(topPosts))
	for _, tp := range topPosts {
		title := "(deleted post)"
		if post, err := a.store.GetBlogPostByID(tp.PostID); err != nil {
			a.log.Warn("stats title lookup failed", zap.Int("post_id", tp.PostID), zap.Error(err))
		} else if post != nil {
			title = post.Title
		}
		stats = append(stats, topPostStat{PostID: tp.PostID, Title: title, Count: tp.Count})
	}

	c.JSON(http.StatusOK, gin.H{
		"analyticsEnabled": true,
		"visitsByDay":      visitsByDay,
		"topPosts":         stats,
	})
}
