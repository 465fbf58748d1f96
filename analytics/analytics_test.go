package analytics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestModule(t *testing.T) (*AnalyticsModule, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect database")
	}

	module := NewAnalyticsModule(db, zap.NewNop())
	assert.NotNil(t, module)
	return module, db
}

func TestNewAnalyticsModule_NilDbDisables(t *testing.T) {
	module := NewAnalyticsModule(nil, zap.NewNop())
	assert.Nil(t, module)

	// os metodos aceitam receiver nil
	assert.Nil(t, module.GetVisitsByDay(30))
	assert.Nil(t, module.GetTopPosts(30, 10))
	module.TrackVisit(nil, 1)
}

func trackVisit(module *AnalyticsModule, postID int, cookie string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if cookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: "joydao_visitor_id", Value: cookie})
	}
	module.TrackVisit(c, postID)
	return w
}

func countVisits(t *testing.T, db *gorm.DB, postID int) int64 {
	var n int64
	err := db.Model(&PostVisit{}).Where("post_id = ?", postID).Count(&n).Error
	assert.NoError(t, err)
	return n
}

func TestTrackVisit_RepeatInsideWindowCountsOnce(t *testing.T) {
	module, db := setupTestModule(t)

	trackVisit(module, 1, "c1")
	trackVisit(module, 1, "c1")

	assert.Equal(t, int64(1), countVisits(t, db, 1))
}

func TestTrackVisit_DifferentVisitorsCountSeparately(t *testing.T) {
	module, db := setupTestModule(t)

	trackVisit(module, 1, "c1")
	trackVisit(module, 1, "c2")

	assert.Equal(t, int64(2), countVisits(t, db, 1))
}

func TestTrackVisit_CountsAgainAfterWindow(t *testing.T) {
	module, db := setupTestModule(t)

	trackVisit(module, 1, "c1")

	// empurra a visita para fora da janela de 30 minutos
	old := time.Now().Add(-31 * time.Minute)
	err := db.Model(&PostVisit{}).Where("post_id = ?", 1).Update("created_at", old).Error
	assert.NoError(t, err)

	trackVisit(module, 1, "c1")

	assert.Equal(t, int64(2), countVisits(t, db, 1))
}

func TestTrackVisit_SetsVisitorCookieWhenMissing(t *testing.T) {
	module, db := setupTestModule(t)

	w := trackVisit(module, 1, "")

	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.Contains(setCookie, "joydao_visitor_id="))
	assert.Equal(t, int64(1), countVisits(t, db, 1))
}

func TestGetVisitsByDay(t *testing.T) {
	module, db := setupTestModule(t)

	now := time.Now()
	db.Create(&PostVisit{PostID: 1, CookieID: "c1", IP: "1.1.1.1", CreatedAt: now})
	db.Create(&PostVisit{PostID: 1, CookieID: "c2", IP: "2.2.2.2", CreatedAt: now})
	db.Create(&PostVisit{PostID: 2, CookieID: "c1", IP: "1.1.1.1", CreatedAt: now.AddDate(0, 0, -1)})

	days := module.GetVisitsByDay(30)
	assert.Len(t, days, 2)

	var total int64
	for _, d := range days {
		total += d.Count
	}
	assert.Equal(t, int64(3), total)
}

func TestGetTopPosts(t *testing.T) {
	module, db := setupTestModule(t)

	now := time.Now()
	db.Create(&PostVisit{PostID: 7, CookieID: "c1", IP: "1.1.1.1", CreatedAt: now})
	db.Create(&PostVisit{PostID: 7, CookieID: "c2", IP: "2.2.2.2", CreatedAt: now})
	db.Create(&PostVisit{PostID: 9, CookieID: "c3", IP: "3.3.3.3", CreatedAt: now})

	top := module.GetTopPosts(30, 10)
	assert.Len(t, top, 2)
	assert.Equal(t, 7, top[0].PostID)
	assert.Equal(t, int64(2), top[0].Count)
}

func TestGetTopPosts_IgnoresOldVisits(t *testing.T) {
	module, db := setupTestModule(t)

	db.Create(&PostVisit{PostID: 7, CookieID: "c1", IP: "1.1.1.1", CreatedAt: time.Now().AddDate(0, 0, -60)})

	top := module.GetTopPosts(30, 10)
	assert.Len(t, top, 0)
}
