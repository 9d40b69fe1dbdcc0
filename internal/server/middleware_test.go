package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceymoss/echo-news/internal/handler"
	"github.com/iceymoss/echo-news/internal/service"
)

func testRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegida", AuthRequired(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": handler.CurrentUserID(c)})
	})
	r.GET("/aberta", AuthOptional(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": handler.CurrentUserID(c)})
	})
	return r
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r := testRouter([]byte("segredo"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	r := testRouter([]byte("segredo"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	secret := []byte("segredo")
	token, err := service.IssueToken(secret, 7, time.Hour)
	require.NoError(t, err)

	r := testRouter(secret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthOptionalAllowsAnonymous(t *testing.T) {
	r := testRouter([]byte("segredo"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/aberta", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	// 令牌坏了也按匿名放行，不拦请求
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/aberta", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}
