package reactor

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// LoginAction 为登录页的全部外部意图
type LoginAction interface{ loginAction() }

type LoginEmailChanged struct{ Email string }
type LoginPasswordChanged struct{ Password string }
type LoginSetError struct{ Message string }
type LoginSubmit struct{}

func (LoginEmailChanged) loginAction()    {}
func (LoginPasswordChanged) loginAction() {}
func (LoginSetError) loginAction()        {}
func (LoginSubmit) loginAction()          {}

type loginMutation interface{ loginMutation() }

type loginSetEmail struct{ email string }
type loginSetPassword struct{ password string }
type loginSetError struct{ message string }
type loginCompleted struct{}

func (loginSetEmail) loginMutation()    {}
func (loginSetPassword) loginMutation() {}
func (loginSetError) loginMutation()    {}
func (loginCompleted) loginMutation()   {}

// LoginState 为登录页状态。IsLoginEnabled 在每次折叠后重算。
type LoginState struct {
	Email            string
	Password         string
	IsLoginEnabled   bool
	ErrorMessage     string
	IsLoginCompleted bool
}

// LoginReactor 驱动登录页
type LoginReactor struct {
	*Container[LoginAction, loginMutation, LoginState]
	auth service.AuthServiceInterface
}

// NewLoginReactor 创建登录页容器
func NewLoginReactor(auth service.AuthServiceInterface) *LoginReactor {
	r := &LoginReactor{auth: auth}
	r.Container = NewContainer(LoginState{}, r.mutate, reduceLogin)
	return r
}

func (r *LoginReactor) mutate(ctx context.Context, action LoginAction, emit func(loginMutation)) {
	switch a := action.(type) {
	case LoginEmailChanged:
		emit(loginSetEmail{a.Email})
	case LoginPasswordChanged:
		emit(loginSetPassword{a.Password})
	case LoginSetError:
		emit(loginSetError{a.Message})
	case LoginSubmit:
		state := r.CurrentState()
		if err := r.auth.Login(ctx, state.Email, state.Password); err != nil {
			emit(loginSetError{errors.UserMessage(err)})
			return
		}
		emit(loginCompleted{})
	}
}

func reduceLogin(state LoginState, mutation loginMutation) LoginState {
	switch m := mutation.(type) {
	case loginSetEmail:
		state.Email = m.email
	case loginSetPassword:
		state.Password = m.password
	case loginSetError:
		state.ErrorMessage = m.message
	case loginCompleted:
		state.IsLoginCompleted = true
	}
	state.IsLoginEnabled = state.Email != "" && state.Password != ""
	return state
}
