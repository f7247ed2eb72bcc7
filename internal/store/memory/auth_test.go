package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/errors"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

// TestCreateAccountValidation 测试建号时的邮箱与密码校验
func TestCreateAccountValidation(t *testing.T) {
	a := NewAuth()
	ctx := context.Background()

	_, err := a.CreateAccount(ctx, "not-an-email", "password123")
	assert.True(t, errors.Is(err, errors.ErrInvalidEmail))

	_, err = a.CreateAccount(ctx, "ok@test.com", "123")
	assert.True(t, errors.Is(err, errors.ErrWeakPassword))

	_, err = a.CreateAccount(ctx, "ok@test.com", "password123")
	require.NoError(t, err)

	_, err = a.CreateAccount(ctx, "ok@test.com", "password456")
	assert.True(t, errors.Is(err, errors.ErrEmailAlreadyInUse))
}

// TestSignInClassification 测试登录失败的错误归类
func TestSignInClassification(t *testing.T) {
	a := NewAuth()
	ctx := context.Background()
	_, err := a.CreateAccount(ctx, "user@test.com", "password123")
	require.NoError(t, err)

	_, err = a.SignIn(ctx, "nobody@test.com", "password123")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))

	_, err = a.SignIn(ctx, "user@test.com", "wrong")
	assert.True(t, errors.Is(err, errors.ErrWrongCredentials))

	a.SetDisabled("user@test.com", true)
	_, err = a.SignIn(ctx, "user@test.com", "password123")
	assert.True(t, errors.Is(err, errors.ErrUserDisabled))
}

// TestSessionLifecycle 测试建号即有会话、登出后缺失、过期归类
func TestSessionLifecycle(t *testing.T) {
	a := NewAuth()
	ctx := context.Background()

	uid, err := a.CreateAccount(ctx, "user@test.com", "password123")
	require.NoError(t, err)

	current, err := a.CurrentUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uid, current)

	require.NoError(t, a.SignOut(ctx))
	_, err = a.CurrentUID(ctx)
	assert.True(t, errors.Is(err, errors.ErrMissingToken))

	// 过期的会话令牌归类为 ErrTokenExpired
	a.SetTokenTTL(-time.Minute)
	_, err = a.SignIn(ctx, "user@test.com", "password123")
	require.NoError(t, err)
	_, err = a.CurrentUID(ctx)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}
