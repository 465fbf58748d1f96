package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joydao/common"
	emailpkg "joydao/email"
	"joydao/models"
	"joydao/store"
)

type ContactModule struct {
	store    store.Store
	notifier *emailpkg.EmailService
	log      *zap.Logger
}

func NewContactModule(s store.Store, notifier *emailpkg.EmailService, log *zap.Logger) *ContactModule {
	return &ContactModule{store: s, notifier: notifier, log: log}
}

func (m *ContactModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/contact/submit", m.submit)
}

func (m *ContactModule) submit(c *gin.Context) {
	var request struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if request.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if !common.IsValidEmail(request.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}
	if request.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	message := models.ContactMessage{
		Name:    request.Name,
		Email:   request.Email,
		Message: request.Message,
	}
	if err := m.store.CreateContactMessage(&message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact form"})
		return
	}

	if m.notifier != nil && m.notifier.Enabled() {
		// a falha da notificacao nao falha a chamada
		go func() {
			if err := m.notifier.SendContactNotification(request.Name, request.Email, request.Message); err != nil {
				m.log.Warn("contact notification failed", zap.Error(err))
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
}
