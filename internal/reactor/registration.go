package reactor

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// RegistrationAction 为注册页的全部外部意图
type RegistrationAction interface{ registrationAction() }

type RegistrationEmailChanged struct{ Email string }
type RegistrationPasswordChanged struct{ Password string }
type RegistrationFullnameChanged struct{ Fullname string }
type RegistrationUsernameChanged struct{ Username string }
type RegistrationImageSelected struct{ Image []byte }
type RegistrationSetError struct{ Message string }
type RegistrationSubmit struct{}

func (RegistrationEmailChanged) registrationAction()    {}
func (RegistrationPasswordChanged) registrationAction() {}
func (RegistrationFullnameChanged) registrationAction() {}
func (RegistrationUsernameChanged) registrationAction() {}
func (RegistrationImageSelected) registrationAction()   {}
func (RegistrationSetError) registrationAction()        {}
func (RegistrationSubmit) registrationAction()          {}

type registrationMutation interface{ registrationMutation() }

type regSetEmail struct{ email string }
type regSetPassword struct{ password string }
type regSetFullname struct{ fullname string }
type regSetUsername struct{ username string }
type regSetImage struct{ image []byte }
type regSetError struct{ message string }
type regCompleted struct{}

func (regSetEmail) registrationMutation()    {}
func (regSetPassword) registrationMutation() {}
func (regSetFullname) registrationMutation() {}
func (regSetUsername) registrationMutation() {}
func (regSetImage) registrationMutation()    {}
func (regSetError) registrationMutation()    {}
func (regCompleted) registrationMutation()   {}

// RegistrationState 为注册页状态。IsSignUpEnabled 在每次折叠后重算：
// 四个文本字段全部非空且已选择头像时为真。
type RegistrationState struct {
	Email             string
	Password          string
	Fullname          string
	Username          string
	ProfileImage      []byte
	IsSignUpEnabled   bool
	ErrorMessage      string
	IsSignupCompleted bool
}

// RegistrationReactor 驱动注册页
type RegistrationReactor struct {
	*Container[RegistrationAction, registrationMutation, RegistrationState]
	auth service.AuthServiceInterface
}

// NewRegistrationReactor 创建注册页容器
func NewRegistrationReactor(auth service.AuthServiceInterface) *RegistrationReactor {
	r := &RegistrationReactor{auth: auth}
	r.Container = NewContainer(RegistrationState{}, r.mutate, reduceRegistration)
	return r
}

func (r *RegistrationReactor) mutate(ctx context.Context, action RegistrationAction, emit func(registrationMutation)) {
	switch a := action.(type) {
	case RegistrationEmailChanged:
		emit(regSetEmail{a.Email})
	case RegistrationPasswordChanged:
		emit(regSetPassword{a.Password})
	case RegistrationFullnameChanged:
		emit(regSetFullname{a.Fullname})
	case RegistrationUsernameChanged:
		emit(regSetUsername{a.Username})
	case RegistrationImageSelected:
		emit(regSetImage{a.Image})
	case RegistrationSetError:
		emit(regSetError{a.Message})
	case RegistrationSubmit:
		state := r.CurrentState()
		if len(state.ProfileImage) == 0 {
			return
		}
		creds := service.Credentials{
			Email:        state.Email,
			Password:     state.Password,
			Fullname:     state.Fullname,
			Username:     state.Username,
			ProfileImage: state.ProfileImage,
		}
		if err := r.auth.Register(ctx, creds); err != nil {
			emit(regSetError{errors.UserMessage(err)})
			return
		}
		emit(regCompleted{})
	}
}

func reduceRegistration(state RegistrationState, mutation registrationMutation) RegistrationState {
	switch m := mutation.(type) {
	case regSetEmail:
		state.Email = m.email
	case regSetPassword:
		state.Password = m.password
	case regSetFullname:
		state.Fullname = m.fullname
	case regSetUsername:
		state.Username = m.username
	case regSetImage:
		state.ProfileImage = m.image
	case regSetError:
		state.ErrorMessage = m.message
	case regCompleted:
		state.IsSignupCompleted = true
	}
	state.IsSignUpEnabled = state.Email != "" && state.Password != "" &&
		state.Fullname != "" && state.Username != "" && len(state.ProfileImage) > 0
	return state
}
