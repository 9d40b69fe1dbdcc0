package xerr

const (
	SERVER_COMMON_ERROR = 100001
	REQUEST_PARAM_ERROR = 100002
	TOKEN_EXPIRE_ERROR  = 100003
	DB_ERROR            = 100004

	ErrBadRequest       = 1000 // HTTP 400
	ErrInvalidInput     = 1001 // HTTP 400
	ErrMissingParameter = 1002 // HTTP 400
	ErrBlockedContent   = 1004 // HTTP 400 敏感词拦截

	ErrUnauthenticated = 1100 // HTTP 401
	ErrInvalidToken    = 1101 // HTTP 401
	ErrTokenExpired    = 1102 // HTTP 401
	ErrInvalidCode     = 1104 // HTTP 401 重置验证码错误或过期

	ErrForbidden = 1200 // HTTP 403

	ErrNotFound         = 1300 // HTTP 404
	ErrResourceNotFound = 1301 // HTTP 404

	ErrConflict  = 1400 // HTTP 409 用户名/邮箱已占用
	ErrMailCrash = 1500 // HTTP 502 邮件投递失败
)
