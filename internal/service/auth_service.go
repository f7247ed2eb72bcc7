package service

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"

	"go.uber.org/zap"
)

// Credentials 为注册所需的全部信息
type Credentials struct {
	Email        string
	Password     string
	Fullname     string
	Username     string
	ProfileImage []byte
}

// AuthService 处理注册、登录、登出与会话恢复
type AuthService struct {
	auth     store.Authenticator
	docs     store.DocumentStore
	uploader ImageUploaderInterface
	session  *session.Manager
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(auth store.Authenticator, docs store.DocumentStore, uploader ImageUploaderInterface, sess *session.Manager) *AuthService {
	return &AuthService{
		auth:     auth,
		docs:     docs,
		uploader: uploader,
		session:  sess,
	}
}

// Register 注册新用户：先上传头像，再创建账户，最后写入用户文档
func (s *AuthService) Register(ctx context.Context, creds Credentials) error {
	imageURL, err := s.uploader.UploadImage(ctx, creds.ProfileImage)
	if err != nil {
		util.Logger.Error("register: upload profile image failed", zap.Error(err))
		return errors.From(err)
	}

	uid, err := s.auth.CreateAccount(ctx, creds.Email, creds.Password)
	if err != nil {
		util.Logger.Error("register: create account failed", zap.Error(err))
		return errors.From(err)
	}

	user := &model.User{
		UID:             uid,
		Email:           creds.Email,
		Fullname:        creds.Fullname,
		Username:        creds.Username,
		ProfileImageURL: imageURL,
	}
	if err := s.docs.Set(ctx, store.CollectionUsers, uid, user.Fields()); err != nil {
		util.Logger.Error("register: write user document failed", zap.Error(err), zap.String("uid", uid))
		return errors.From(err)
	}

	util.Logger.Info("user registered", zap.String("uid", uid), zap.String("username", creds.Username))
	return nil
}

// Login 登录并恢复会话用户
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if _, err := s.auth.SignIn(ctx, email, password); err != nil {
		return errors.From(err)
	}

	if _, err := s.RestoreSession(ctx); err != nil {
		return err
	}
	return nil
}

// Logout 登出并清除会话用户
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return errors.From(err)
	}
	s.session.Clear()
	return nil
}

// RestoreSession 根据认证后端的当前会话恢复用户，并写入会话管理器
func (s *AuthService) RestoreSession(ctx context.Context) (*model.User, error) {
	uid, err := s.auth.CurrentUID(ctx)
	if err != nil {
		return nil, errors.From(err)
	}

	fields, err := s.docs.Get(ctx, store.CollectionUsers, uid)
	if err != nil {
		if errors.Is(err, errors.ErrResourceNotFound) {
			return nil, errors.Wrap(errors.ErrUserNotFound, "session user document not found", err)
		}
		return nil, errors.From(err)
	}

	user, err := model.ParseUser(fields)
	if err != nil {
		return nil, errors.From(err)
	}

	s.session.Set(user)
	return user, nil
}

type AuthServiceInterface interface {
	Register(ctx context.Context, creds Credentials) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*model.User, error)
}

var _ AuthServiceInterface = (*AuthService)(nil)
