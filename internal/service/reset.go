package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iceymoss/echo-news/pkg/logger"
	mailer "github.com/iceymoss/echo-news/pkg/message/email"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// 验证码与重置令牌的有效期
const (
	resetCodeTTL  = 5 * time.Minute
	resetTokenTTL = 15 * time.Minute
	resetCodeLen  = 6
)

// ResetService 邮箱验证码找回密码
//
// 流程：请求验证码 → 校验验证码换一次性重置令牌 → 凭令牌改密。
// 验证码和令牌都存在 CodeStore（生产是 redis）里并自带过期。
type ResetService struct {
	users  UserStore
	codes  mailer.CodeStore
	sender mailer.ResetSender
}

func NewResetService(users UserStore, codes mailer.CodeStore, sender mailer.ResetSender) *ResetService {
	return &ResetService{users: users, codes: codes, sender: sender}
}

func resetCodeKey(email string) string {
	return "reset:code:" + strings.ToLower(email)
}

func resetTokenKey(token string) string {
	return "reset:token:" + token
}

// RequestCode 给已注册邮箱发 6 位验证码
func (s *ResetService) RequestCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return xerr.New(xerr.ErrMissingParameter, "Informe o e-mail cadastrado.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return xerr.New(xerr.ErrNotFound, "Este e-mail não está cadastrado.")
	}

	code := generateNumericCode(resetCodeLen)
	if err := s.codes.Save(ctx, resetCodeKey(email), code, resetCodeTTL); err != nil {
		return err
	}
	if err := s.sender.SendResetCode(user.Email, code); err != nil {
		logger.Error("重置验证码邮件发送失败", zap.String("email", user.Email), zap.Error(err))
		return xerr.New(xerr.ErrMailCrash, "Erro ao enviar e-mail. Verifique a configuração SMTP.")
	}
	return nil
}

// VerifyCode 校验验证码；通过后验证码作废，换发短期重置令牌
func (s *ResetService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	email = strings.TrimSpace(email)
	stored, err := s.codes.Get(ctx, resetCodeKey(email))
	if err != nil {
		return "", err
	}
	if stored == "" || stored != strings.TrimSpace(code) {
		return "", xerr.New(xerr.ErrInvalidCode, "Código inválido ou expirado.")
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}
	if err := s.codes.Save(ctx, resetTokenKey(token), strings.ToLower(email), resetTokenTTL); err != nil {
		return "", err
	}
	if err := s.codes.Delete(ctx, resetCodeKey(email)); err != nil {
		logger.Warn("作废验证码失败", zap.String("email", email), zap.Error(err))
	}
	return token, nil
}

// Reset 凭重置令牌设置新密码，成功后令牌作废
func (s *ResetService) Reset(ctx context.Context, token, password, passwordConfirm string) error {
	email, err := s.codes.Get(ctx, resetTokenKey(token))
	if err != nil {
		return err
	}
	if email == "" {
		return xerr.New(xerr.ErrInvalidCode, "Acesso negado. Por favor, complete a verificação do código.")
	}

	if password == "" || password != passwordConfirm {
		return xerr.New(xerr.ErrInvalidInput, "Verifique se as senhas coincidem.")
	}
	if len(password) < 8 {
		return xerr.New(xerr.ErrInvalidInput, "A senha deve ter pelo menos 8 caracteres.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return xerr.New(xerr.ErrNotFound, "Erro ao encontrar usuário. Reinicie o processo.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if err := s.codes.Delete(ctx, resetTokenKey(token)); err != nil {
		logger.Warn("作废重置令牌失败", zap.Error(err))
	}
	return nil
}

// ResendCode 重发仍在有效期内的验证码，过期则要求重新走流程
func (s *ResetService) ResendCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	code, err := s.codes.Get(ctx, resetCodeKey(email))
	if err != nil {
		return err
	}
	if code == "" {
		return xerr.New(xerr.ErrInvalidCode, "Sessão expirada. Por favor, reinicie a redefinição de senha.")
	}
	if err := s.sender.SendResetCode(email, code); err != nil {
		logger.Error("重置验证码邮件重发失败", zap.String("email", email), zap.Error(err))
		return xerr.New(xerr.ErrMailCrash, "Erro ao tentar reenviar o e-mail. Verifique a configuração SMTP.")
	}
	return nil
}

// generateNumericCode 生成纯数字验证码，随机源异常时退回时间戳兜底
func generateNumericCode(length int) string {
	const charset = "0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

func generateResetToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
