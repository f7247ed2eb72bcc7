package reactor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/store/memory"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// testEnv 在内存后端之上组装完整的服务层
type testEnv struct {
	docs          *memory.Store
	auth          *memory.Auth
	sess          *session.Manager
	authSvc       *service.AuthService
	users         *service.UserService
	posts         *service.PostService
	comments      *service.CommentService
	notifications *service.NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	docs := memory.New()
	auth := memory.NewAuth()
	sess := session.NewManager()
	uploader := service.NewImageUploader(storage.NewMemoryStorage())

	return &testEnv{
		docs:          docs,
		auth:          auth,
		sess:          sess,
		authSvc:       service.NewAuthService(auth, docs, uploader, sess),
		users:         service.NewUserService(docs, sess),
		posts:         service.NewPostService(docs, uploader, sess),
		comments:      service.NewCommentService(docs, sess),
		notifications: service.NewNotificationService(docs, sess),
	}
}

// registerAndLogin 注册并登录一个用户，返回会话用户
func (e *testEnv) registerAndLogin(t *testing.T, email, username string) *model.User {
	t.Helper()
	ctx := context.Background()

	creds := service.Credentials{
		Email:        email,
		Password:     "password123",
		Fullname:     username + " fullname",
		Username:     username,
		ProfileImage: []byte{0xff, 0xd8},
	}
	require.NoError(t, e.authSvc.Register(ctx, creds))
	require.NoError(t, e.authSvc.Login(ctx, email, "password123"))

	user, ok := e.sess.Current()
	require.True(t, ok)
	return user
}

// seedPost 以当前会话用户发布一个帖子
func (e *testEnv) seedPost(t *testing.T, caption string) *model.Post {
	t.Helper()
	post, err := e.posts.UploadPost(context.Background(), caption, []byte{0xff, 0xd8})
	require.NoError(t, err)
	return post
}
