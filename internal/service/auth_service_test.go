package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/store/memory"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store, *memory.Auth, *session.Manager) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	docs := memory.New()
	auth := memory.NewAuth()
	sess := session.NewManager()
	uploader := NewImageUploader(storage.NewMemoryStorage())
	return NewAuthService(auth, docs, uploader, sess), docs, auth, sess
}

func validCreds() Credentials {
	return Credentials{
		Email:        "user@test.com",
		Password:     "password123",
		Fullname:     "Test User",
		Username:     "testuser",
		ProfileImage: []byte{0xff, 0xd8},
	}
}

// TestRegisterWritesUserDocument 测试注册流程：上传头像、建账户、写用户文档
func TestRegisterWritesUserDocument(t *testing.T) {
	svc, docs, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, validCreds()))

	users, err := docs.List(ctx, store.CollectionUsers)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "testuser", users[0].Fields["username"])
	assert.NotEmpty(t, users[0].Fields["profileImageUrl"])
}

// TestRegisterRejectsBadCredentials 测试无效邮箱与弱密码的归类
func TestRegisterRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	creds := validCreds()
	creds.Email = "not-an-email"
	err := svc.Register(ctx, creds)
	assert.True(t, errors.Is(err, errors.ErrInvalidEmail))

	creds = validCreds()
	creds.Password = "123"
	err = svc.Register(ctx, creds)
	assert.True(t, errors.Is(err, errors.ErrWeakPassword))

	require.NoError(t, svc.Register(ctx, validCreds()))
	err = svc.Register(ctx, validCreds())
	assert.True(t, errors.Is(err, errors.ErrEmailAlreadyInUse))
}

// TestLoginRestoresSessionUser 测试登录后会话用户可读
func TestLoginRestoresSessionUser(t *testing.T) {
	svc, _, _, sess := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, validCreds()))
	require.NoError(t, svc.Login(ctx, "user@test.com", "password123"))

	user, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "testuser", user.Username)
	assert.True(t, user.IsCurrentUser(user.UID))
}

// TestLoginFailures 测试登录失败的错误归类
func TestLoginFailures(t *testing.T) {
	svc, _, auth, _ := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, validCreds()))

	err := svc.Login(ctx, "nobody@test.com", "password123")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))

	err = svc.Login(ctx, "user@test.com", "wrongpass")
	assert.True(t, errors.Is(err, errors.ErrWrongCredentials))

	auth.SetDisabled("user@test.com", true)
	err = svc.Login(ctx, "user@test.com", "password123")
	assert.True(t, errors.Is(err, errors.ErrUserDisabled))
}

// TestLogoutClearsSession 测试登出后会话用户被清除
func TestLogoutClearsSession(t *testing.T) {
	svc, _, _, sess := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, validCreds()))
	require.NoError(t, svc.Login(ctx, "user@test.com", "password123"))
	require.NoError(t, svc.Logout(ctx))

	_, ok := sess.Current()
	assert.False(t, ok)

	_, err := svc.RestoreSession(ctx)
	assert.True(t, errors.Is(err, errors.ErrMissingToken))
}
