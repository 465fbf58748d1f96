package analytics

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostVisit is one recorded read of a published post.
type PostVisit struct {
	ID        uint      `gorm:"primary_key;autoIncrement"`
	PostID    int       `gorm:"not null;index"`
	CookieID  string    `gorm:"not null;index"`
	IP        string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

type AnalyticsModule struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAnalyticsModule prepares visit tracking. A nil db (memory-store mode)
// disables analytics and every method becomes a no-op.
func NewAnalyticsModule(db *gorm.DB, log *zap.Logger) *AnalyticsModule {
	if db == nil {
		log.Info("analytics disabled: no live database")
		return nil
	}

	if err := db.AutoMigrate(&PostVisit{}); err != nil {
		log.Warn("error migrating post_visits table", zap.Error(err))
		return nil
	}

	return &AnalyticsModule{db: db, log: log}
}

// TrackVisit records a visit for a post. Only one visit per visitor per
// post is counted inside a 30 minute window, so refreshes do not inflate
// the numbers.
func (a *AnalyticsModule) TrackVisit(c *gin.Context, postID int) {
	if a == nil || a.db == nil {
		return
	}

	cookieID := a.getOrCreateCookieID(c)
	thirtyMinutesAgo := time.Now().Add(-30 * time.Minute)

	var recent PostVisit
	err := a.db.Where("cookie_id = ? AND post_id = ? AND created_at > ?",
		cookieID, postID, thirtyMinutesAgo).First(&recent).Error
	if err == nil {
		return
	}

	visit := PostVisit{
		PostID:    postID,
		CookieID:  cookieID,
		IP:        c.ClientIP(),
		CreatedAt: time.Now(),
	}

	if err := a.db.Create(&visit).Error; err != nil {
		a.log.Warn("error saving post visit", zap.Error(err))
	}
}

func (a *AnalyticsModule) getOrCreateCookieID(c *gin.Context) string {
	const cookieName = "joydao_visitor_id"

	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "anonymous"
	}
	id := hex.EncodeToString(b)

	c.SetCookie(cookieName, id, 86400*365, "/", "", false, true)
	return id
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type PostCount struct {
	PostID int   `json:"postId"`
	Count  int64 `json:"count"`
}

// GetVisitsByDay returns visit totals per day for the last N days.
func (a *AnalyticsModule) GetVisitsByDay(days int) []DayCount {
	if a == nil || a.db == nil {
		return nil
	}

	since := time.Now().AddDate(0, 0, -days)

	var out []DayCount
	err := a.db.Model(&PostVisit{}).
		Select("date(created_at) as date, count(*) as count").
		Where("created_at > ?", since).
		Group("date(created_at)").
		Order("date ASC").
		Scan(&out).Error
	if err != nil {
		a.log.Warn("error loading visits by day", zap.Error(err))
		return nil
	}
	return out
}

// GetTopPosts returns the most visited posts over the last N days.
func (a *AnalyticsModule) GetTopPosts(days, limit int) []PostCount {
	if a == nil || a.db == nil {
		return nil
	}

	since := time.Now().AddDate(0, 0, -days)

	var out []PostCount
	err := a.db.Model(&PostVisit{}).
		Select("post_id, count(*) as count").
		Where("created_at > ?", since).
		Group("post_id").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		a.log.Warn("error loading top posts", zap.Error(err))
		return nil
	}
	return out
}
