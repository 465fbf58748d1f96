package contact

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"joydao/store"
)

func setupTestRouter() (*gin.Engine, *store.MemoryStore) {
	gin.SetMode(gin.TestMode)

	dataStore := store.NewMemoryStore()
	module := NewContactModule(dataStore, nil, zap.NewNop())

	router := gin.New()
	module.RegisterRoutes(router)
	return router, dataStore
}

func submit(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/contact/submit", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmit_EmptyName(t *testing.T) {
	router, dataStore := setupTestRouter()

	w := submit(router, `{"name":"","email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required")

	messages, _ := dataStore.GetContactMessages()
	assert.Len(t, messages, 0)
}

func TestSubmit_InvalidEmail(t *testing.T) {
	router, _ := setupTestRouter()

	w := submit(router, `{"name":"A","email":"not-an-email","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email")
}

func TestSubmit_EmptyMessage(t *testing.T) {
	router, _ := setupTestRouter()

	w := submit(router, `{"name":"A","email":"a@b.com","message":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")
}

func TestSubmit_Success(t *testing.T) {
	router, dataStore := setupTestRouter()

	w := submit(router, `{"name":"A","email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	messages, _ := dataStore.GetContactMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "A", messages[0].Name)
	assert.Equal(t, "a@b.com", messages[0].Email)
	assert.Equal(t, "hi", messages[0].Message)
}
