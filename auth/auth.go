package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joydao/common"
	"joydao/models"
	"joydao/store"
)

const (
	// HeaderOpenID carries the opaque caller identity token.
	HeaderOpenID    = "X-OpenID"
	headerOpenIDAlt = "X-Open-Id"

	sessionKeyOpenID = "open_id"
	contextKeyCaller = "caller"
)

// Caller is the resolved identity of a request. Role is derived server-side,
// never read from the header.
type Caller struct {
	OpenID string `json:"openId"`
	Role   string `json:"role"`
}

type AuthModule struct {
	store store.Store
	cfg   *common.Config
	log   *zap.Logger
}

func NewAuthModule(s store.Store, cfg *common.Config, log *zap.Logger) *AuthModule {
	return &AuthModule{store: s, cfg: cfg, log: log}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.GET("/me", a.me)
		authGroup.POST("/logout", a.logout)
	}
}

// Identify resolves the caller on every request: the identity header wins,
// the session cookie is the browser fallback, absence of both means
// anonymous. A resolved identity upserts the user row (first contact
// creates it) and is mirrored into the session.
func (a *AuthModule) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		openID := extractOpenID(c)

		session := sessions.Default(c)
		if openID == "" {
			if v, ok := session.Get(sessionKeyOpenID).(string); ok {
				openID = v
			}
		}

		if openID == "" {
			c.Next()
			return
		}

		caller := Caller{OpenID: openID, Role: models.RoleUser}
		upsert := store.UserUpsert{OpenID: openID}
		if a.IsOwner(openID) {
			caller.Role = models.RoleAdmin
			role := models.RoleAdmin
			upsert.Role = &role
		}
		now := time.Now()
		upsert.LastSignedIn = &now

		if err := a.store.UpsertUser(upsert); err != nil {
			a.log.Warn("user upsert failed", zap.Error(err))
		}

		if v, ok := session.Get(sessionKeyOpenID).(string); !ok || v != openID {
			session.Set(sessionKeyOpenID, openID)
			if err := session.Save(); err != nil {
				a.log.Warn("session save failed", zap.Error(err))
			}
		}

		c.Set(contextKeyCaller, caller)
		c.Next()
	}
}

// IsOwner is the single place where the admin capability is decided:
// case-sensitive equality against the configured owner identity.
func (a *AuthModule) IsOwner(openID string) bool {
	return openID != "" && openID == a.cfg.OwnerOpenID
}

// RequireCaller blocks anonymous requests.
func (a *AuthModule) RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login"})
			return
		}
		c.Next()
	}
}

// RequireOwner blocks every caller except the configured owner. The check
// runs on each request; the admin decision is never cached.
func (a *AuthModule) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login"})
			return
		}
		if !a.IsOwner(caller.OpenID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized: Admin access only"})
			return
		}
		c.Next()
	}
}

// CallerFrom returns the identity resolved by Identify, if any.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, exists := c.Get(contextKeyCaller)
	if !exists {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

func extractOpenID(c *gin.Context) string {
	openID := c.GetHeader(HeaderOpenID)
	if openID == "" {
		openID = c.GetHeader(headerOpenIDAlt)
	}
	return strings.TrimSpace(openID)
}

func (a *AuthModule) me(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	user, err := a.store.GetUserByOpenID(caller.OpenID)
	if err != nil || user == nil {
		// devolve apenas a identidade resolvida
		c.JSON(http.StatusOK, caller)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		a.log.Warn("session clear failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
