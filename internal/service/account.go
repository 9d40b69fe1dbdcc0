package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type UserStore interface {
	Create(ctx context.Context, user *objects.User) error
	GetByUsername(ctx context.Context, username string) (*objects.User, error)
	GetByEmail(ctx context.Context, email string) (*objects.User, error)
	UpdatePassword(ctx context.Context, userID uint, hash string) error
}

type InterestWriter interface {
	ReplaceInterests(ctx context.Context, userID uint, categoryIDs []uint) error
}

// AccountService 注册、登录与令牌签发
// 会话、Cookie 一概不管，身份只靠无状态 Bearer 令牌
type AccountService struct {
	users    UserStore
	profiles InterestWriter
	secret   []byte
	tokenTTL time.Duration
}

func NewAccountService(users UserStore, profiles InterestWriter, secret string, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		users:    users,
		profiles: profiles,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// RegisterInput 注册入参
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	// CategoryIDs 注册时顺带选择的兴趣栏目
	CategoryIDs []uint `json:"category_ids"`
}

// Register 注册新用户，可选初始化兴趣档案，成功即返回登录令牌
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*objects.User, string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" || in.PasswordConfirm == "" {
		return nil, "", xerr.New(xerr.ErrMissingParameter, "Todos os campos obrigatórios devem ser preenchidos.")
	}
	if in.Password != in.PasswordConfirm {
		return nil, "", xerr.New(xerr.ErrInvalidInput, "As senhas não coincidem.")
	}
	if len(in.Password) < 8 {
		return nil, "", xerr.New(xerr.ErrInvalidInput, "A senha deve ter pelo menos 8 caracteres.")
	}

	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", xerr.New(xerr.ErrConflict, "Este nome de usuário já está em uso.")
	}
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", xerr.New(xerr.ErrConflict, "Este e-mail já está cadastrado.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &objects.User{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		Password:  string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if len(in.CategoryIDs) > 0 {
		if err := s.profiles.ReplaceInterests(ctx, user.ID, in.CategoryIDs); err != nil {
			// 账号已建好，兴趣初始化失败不拦注册
			logger.Warn("初始化兴趣档案失败", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	token, err := IssueToken(s.secret, user.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 用户名密码换令牌
func (s *AccountService) Login(ctx context.Context, username, password string) (*objects.User, string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, "", xerr.New(xerr.ErrMissingParameter, "Por favor, preencha o usuário e a senha.")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", xerr.New(xerr.ErrUnauthenticated, "Usuário ou senha inválidos.")
	}

	token, err := IssueToken(s.secret, user.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken 签发 HS256 令牌，Subject 存用户 ID
func IssueToken(secret []byte, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    "echo-news",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken 校验令牌并取回用户 ID
func ParseToken(secret []byte, tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, xerr.New(xerr.ErrInvalidToken, "token inválido")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, xerr.New(xerr.ErrInvalidToken, "Sessão inválida ou expirada.")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, xerr.New(xerr.ErrInvalidToken, "Sessão inválida ou expirada.")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, xerr.New(xerr.ErrInvalidToken, "Sessão inválida ou expirada.")
	}
	return uint(id), nil
}
