package blog

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"joydao/analytics"
	"joydao/models"
	"joydao/store"
)

type BlogModule struct {
	store     store.Store
	analytics *analytics.AnalyticsModule
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func NewBlogModule(s store.Store, analyticsModule *analytics.AnalyticsModule) *BlogModule {
	return &BlogModule{store: s, analytics: analyticsModule}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	blogGroup := router.Group("/api/blog")
	{
		blogGroup.GET("/posts", b.publishedPosts)
		blogGroup.GET("/posts/:slug", b.postBySlug)
		blogGroup.GET("/tags", b.tags)
	}
}

func (b *BlogModule) publishedPosts(c *gin.Context) {
	posts, err := b.store.GetPublishedBlogPosts()
	if err != nil {
		// leituras degradam para resultado vazio
		c.JSON(http.StatusOK, []models.BlogPost{})
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

type postResponse struct {
	models.BlogPost
	ContentHTML string `json:"contentHtml"`
}

func (b *BlogModule) postBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := b.store.GetBlogPostBySlug(slug)
	if err != nil || post == nil {
		// ausencia e resultado nulo, nao erro
		c.JSON(http.StatusOK, nil)
		return
	}

	if post.Status == models.StatusPublished {
		b.analytics.TrackVisit(c, post.ID)
	}

	c.JSON(http.StatusOK, postResponse{
		BlogPost:    *post,
		ContentHTML: renderMarkdown(post.Content),
	})
}

func (b *BlogModule) tags(c *gin.Context) {
	tags, err := b.store.GetAllBlogTags()
	if err != nil {
		c.JSON(http.StatusOK, []models.BlogTag{})
		return
	}
	if tags == nil {
		tags = []models.BlogTag{}
	}
	c.JSON(http.StatusOK, tags)
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// Em caso de erro, retorna o conteúdo original para não quebrar a página
		return content
	}
	return buf.String()
}
