package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoginInitialState 测试登录页初始状态
func TestLoginInitialState(t *testing.T) {
	env := newTestEnv(t)
	r := NewLoginReactor(env.authSvc)
	defer r.Close()

	state := r.CurrentState()
	assert.Empty(t, state.Email)
	assert.Empty(t, state.Password)
	assert.False(t, state.IsLoginEnabled)
	assert.False(t, state.IsLoginCompleted)
}

// TestLoginEnabledGating 测试两个字段都非空时才允许提交
func TestLoginEnabledGating(t *testing.T) {
	env := newTestEnv(t)
	r := NewLoginReactor(env.authSvc)
	defer r.Close()

	r.Dispatch(LoginEmailChanged{Email: "a@b.com"})
	assert.Eventually(t, func() bool { return r.CurrentState().Email == "a@b.com" }, waitFor, tick)
	assert.False(t, r.CurrentState().IsLoginEnabled)

	r.Dispatch(LoginPasswordChanged{Password: "secret"})
	assert.Eventually(t, func() bool { return r.CurrentState().IsLoginEnabled }, waitFor, tick)

	r.Dispatch(LoginPasswordChanged{Password: ""})
	assert.Eventually(t, func() bool { return !r.CurrentState().IsLoginEnabled }, waitFor, tick)
}

// TestLoginSuccess 测试登录成功后完成标记翻真并恢复会话用户
func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "login@test.com", "loginuser")

	r := NewLoginReactor(env.authSvc)
	defer r.Close()

	r.Dispatch(LoginEmailChanged{Email: "login@test.com"})
	r.Dispatch(LoginPasswordChanged{Password: "password123"})
	assert.Eventually(t, func() bool { return r.CurrentState().IsLoginEnabled }, waitFor, tick)

	r.Dispatch(LoginSubmit{})
	assert.Eventually(t, func() bool { return r.CurrentState().IsLoginCompleted }, waitFor, tick)
	assert.Empty(t, r.CurrentState().ErrorMessage)
}

// TestLoginFailureSetsError 测试登录失败只设置错误信息，容器继续可用
func TestLoginFailureSetsError(t *testing.T) {
	env := newTestEnv(t)
	r := NewLoginReactor(env.authSvc)
	defer r.Close()

	r.Dispatch(LoginEmailChanged{Email: "nobody@test.com"})
	r.Dispatch(LoginPasswordChanged{Password: "whatever"})
	r.Dispatch(LoginSubmit{})

	assert.Eventually(t, func() bool { return r.CurrentState().ErrorMessage != "" }, waitFor, tick)
	assert.False(t, r.CurrentState().IsLoginCompleted)

	// 错误是一次性的，表现层展示后派发清除动作
	r.Dispatch(LoginSetError{Message: ""})
	assert.Eventually(t, func() bool { return r.CurrentState().ErrorMessage == "" }, waitFor, tick)
}
