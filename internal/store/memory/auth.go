package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	uid          string
	email        string
	passwordHash []byte
	disabled     bool
}

// Auth 为内存认证实现。密码以 bcrypt 存储，会话以 JWT 表示，
// 过期与缺失分别映射到 ErrTokenExpired / ErrMissingToken。
type Auth struct {
	mu       sync.RWMutex
	byEmail  map[string]*account
	token    string
	tokenTTL time.Duration
}

// NewAuth 创建一个新的内存认证实例
func NewAuth() *Auth {
	return &Auth{
		byEmail:  make(map[string]*account),
		tokenTTL: 24 * time.Hour,
	}
}

var _ store.Authenticator = (*Auth)(nil)

// SetTokenTTL 调整会话有效期（测试用）
func (a *Auth) SetTokenTTL(ttl time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tokenTTL = ttl
}

// SetDisabled 启用/禁用账户
func (a *Auth) SetDisabled(email string, disabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if acc, ok := a.byEmail[email]; ok {
		acc.disabled = disabled
	}
}

func (a *Auth) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if !util.IsValidEmail(email) {
		return "", errors.New(errors.ErrInvalidEmail, "invalid email format")
	}
	if !util.IsPasswordStrong(password) {
		return "", errors.New(errors.ErrWeakPassword, "password must be at least 6 characters")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byEmail[email]; ok {
		return "", errors.New(errors.ErrEmailAlreadyInUse, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "hash password", err)
	}

	acc := &account{
		uid:          uuid.New().String(),
		email:        email,
		passwordHash: hash,
	}
	a.byEmail[email] = acc

	// 注册成功即建立会话，与托管认证后端的行为一致
	token, err := util.GenerateToken(acc.uid, a.tokenTTL)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "generate session token", err)
	}
	a.token = token
	return acc.uid, nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.byEmail[email]
	if !ok {
		return "", errors.New(errors.ErrUserNotFound, "no account for email")
	}
	if acc.disabled {
		return "", errors.New(errors.ErrUserDisabled, "account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", errors.Wrap(errors.ErrWrongCredentials, "wrong password", err)
	}

	token, err := util.GenerateToken(acc.uid, a.tokenTTL)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "generate session token", err)
	}
	a.token = token
	return acc.uid, nil
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	return nil
}

func (a *Auth) CurrentUID(ctx context.Context) (string, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()

	return util.ValidateToken(token)
}
