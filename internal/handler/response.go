package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/pkg/logger"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// OK 成功响应统一信封
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
}

// Fail 失败响应：业务码映射 HTTP 状态，非业务错误按内部错误兜底
func Fail(c *gin.Context, err error) {
	code := xerr.Code(err)
	status := xerr.HTTPStatus(code)
	if status == http.StatusInternalServerError {
		logger.Error("请求处理失败", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"code": code, "msg": xerr.Msg(err)})
}

// userIDKey 中间件写入 gin 上下文的用户 ID 键
const userIDKey = "user_id"

// CurrentUserID 取当前登录用户，匿名为 0
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// SetCurrentUserID 供鉴权中间件写入
func SetCurrentUserID(c *gin.Context, id uint) {
	c.Set(userIDKey, id)
}
