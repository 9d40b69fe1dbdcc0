package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// AuthHandler 注册 / 登录 / 验证码找回密码
type AuthHandler struct {
	accounts *service.AccountService
	reset    *service.ResetService
}

func NewAuthHandler(accounts *service.AccountService, reset *service.ResetService) *AuthHandler {
	return &AuthHandler{accounts: accounts, reset: reset}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	user, token, err := h.accounts.Register(c.Request.Context(), in)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	user, token, err := h.accounts.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) ResetRequest(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	if err := h.reset.RequestCode(c.Request.Context(), in.Email); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"message": "Código enviado para o e-mail."})
}

func (h *AuthHandler) ResetVerify(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	token, err := h.reset.VerifyCode(c.Request.Context(), in.Email, in.Code)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"reset_token": token})
}

func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var in struct {
		ResetToken      string `json:"reset_token"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	if err := h.reset.Reset(c.Request.Context(), in.ResetToken, in.Password, in.PasswordConfirm); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"message": "Senha redefinida com sucesso!"})
}

func (h *AuthHandler) ResetResend(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	if err := h.reset.ResendCode(c.Request.Context(), in.Email); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"message": "Um novo código foi enviado para seu e-mail."})
}
