package newsletter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joydao/common"
	"joydao/store"
)

type NewsletterModule struct {
	store store.Store
}

func NewNewsletterModule(s store.Store) *NewsletterModule {
	return &NewsletterModule{store: s}
}

func (m *NewsletterModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/newsletter/subscribe", m.subscribe)
}

func (m *NewsletterModule) subscribe(c *gin.Context) {
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

	// inscrever duas vezes e sucesso nas duas: a re-inscricao reativa
	if err := m.store.SubscribeToNewsletter(request.Email); err != nil {
		if err == store.ErrConflict {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email already subscribed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe to newsletter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully subscribed to newsletter"})
}
