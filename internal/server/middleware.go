package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/handler"
	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AuthOptional 有令牌就解析身份，没有或解析失败按匿名放行
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if userID, err := service.ParseToken(secret, token); err == nil {
				handler.SetCurrentUserID(c, userID)
			}
		}
		c.Next()
	}
}

// AuthRequired 强制登录，令牌缺失或无效直接 401
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			handler.Fail(c, xerr.New(xerr.ErrUnauthenticated, "Autenticação necessária."))
			c.Abort()
			return
		}
		userID, err := service.ParseToken(secret, token)
		if err != nil {
			handler.Fail(c, xerr.New(xerr.ErrInvalidToken, "Token inválido ou expirado."))
			c.Abort()
			return
		}
		handler.SetCurrentUserID(c, userID)
		c.Next()
	}
}
