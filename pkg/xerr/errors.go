package xerr

import (
	"errors"
	"net/http"

	xerrors "github.com/zeromicro/x/errors"
)

// New 构造带业务码的错误
func New(code int, msg string) error {
	return xerrors.New(code, msg)
}

// Code 提取业务码，非 CodeMsg 错误一律按内部错误处理
func Code(err error) int {
	var cm *xerrors.CodeMsg
	if errors.As(err, &cm) {
		return cm.Code
	}
	return SERVER_COMMON_ERROR
}

// Msg 提取对外展示的错误消息
func Msg(err error) string {
	var cm *xerrors.CodeMsg
	if errors.As(err, &cm) {
		return cm.Msg
	}
	return "erro interno do servidor"
}

// HTTPStatus 业务码到 HTTP 状态码的映射
func HTTPStatus(code int) int {
	switch code {
	case ErrBadRequest, ErrInvalidInput, ErrMissingParameter, ErrBlockedContent, REQUEST_PARAM_ERROR:
		return http.StatusBadRequest
	case ErrUnauthenticated, ErrInvalidToken, ErrTokenExpired, ErrInvalidCode, TOKEN_EXPIRE_ERROR:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound, ErrResourceNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrMailCrash:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
