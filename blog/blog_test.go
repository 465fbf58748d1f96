package blog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"joydao/models"
	"joydao/store"
)

func setupTestRouter() (*gin.Engine, *store.MemoryStore) {
	gin.SetMode(gin.TestMode)

	dataStore := store.NewMemoryStore()
	module := NewBlogModule(dataStore, nil)

	router := gin.New()
	module.RegisterRoutes(router)
	return router, dataStore
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublishedPosts_OnlyPublished(t *testing.T) {
	router, dataStore := setupTestRouter()

	now := time.Now()
	dataStore.CreateBlogPost(&models.BlogPost{
		Title: "Live", Slug: "live", Content: "c",
		Status: models.StatusPublished, PublishedAt: &now,
	})
	dataStore.CreateBlogPost(&models.BlogPost{
		Title: "Hidden", Slug: "hidden", Content: "c", Status: models.StatusDraft,
	})

	w := get(router, "/api/blog/posts")
	assert.Equal(t, http.StatusOK, w.Code)

	var posts []models.BlogPost
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)
}

func TestPublishedPosts_EmptyStoreIsEmptyList(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/api/blog/posts")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestPostBySlug_MissingIsNull(t *testing.T) {
	router, _ := setupTestRouter()

	w := get(router, "/api/blog/posts/nothing-here")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestPostBySlug_RendersMarkdown(t *testing.T) {
	router, dataStore := setupTestRouter()

	now := time.Now()
	dataStore.CreateBlogPost(&models.BlogPost{
		Title: "MD", Slug: "md", Content: "# Title\n\n**bold**",
		Status: models.StatusPublished, PublishedAt: &now,
	})

	w := get(router, "/api/blog/posts/md")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slug        string `json:"slug"`
		Content     string `json:"content"`
		ContentHTML string `json:"contentHtml"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "md", resp.Slug)
	assert.Equal(t, "# Title\n\n**bold**", resp.Content)
	assert.Contains(t, resp.ContentHTML, "<h1")
	assert.Contains(t, resp.ContentHTML, "<strong>bold</strong>")
}

func TestTags_ListsAll(t *testing.T) {
	router, dataStore := setupTestRouter()

	dataStore.CreateBlogTag("Go", "go")
	dataStore.CreateBlogTag("Web", "web")

	w := get(router, "/api/blog/tags")
	assert.Equal(t, http.StatusOK, w.Code)

	var tags []models.BlogTag
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	assert.Len(t, tags, 2)
}

func TestRenderMarkdown_GFM(t *testing.T) {
	html := renderMarkdown("~~gone~~ and https://joydao.dev")
	assert.Contains(t, html, "<del>gone</del>")
	assert.Contains(t, html, "<a href=")
}
