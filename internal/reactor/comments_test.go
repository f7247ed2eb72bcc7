package reactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// TestCommentsFetchIsAdditive 测试两次拉取的结果追加合并而不是整体替换
func TestCommentsFetchIsAdditive(t *testing.T) {
	fetches := [][]*model.Comment{
		{{ID: "c1", Text: "one"}, {ID: "c2", Text: "two"}},
		{{ID: "c3", Text: "three"}},
	}
	call := 0
	svc := &stubCommentService{
		fetch: func(ctx context.Context, postID string) ([]*model.Comment, error) {
			result := fetches[call]
			call++
			return result, nil
		},
	}

	r := NewCommentReactor(svc, &stubNotificationService{}, &model.Post{PostID: "p1"})
	defer r.Close()

	r.Dispatch(CommentFetch{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Comments) == 2 }, waitFor, tick)

	r.Dispatch(CommentFetch{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Comments) == 3 }, waitFor, tick)

	ids := []string{}
	for _, c := range r.CurrentState().Comments {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
}

// TestCommentUploadChain 测试上传链：写评论、通知帖主、本地追加，
// 加载标记包住整条链
func TestCommentUploadChain(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerAndLogin(t, "owner@test.com", "owner")
	post := env.seedPost(t, "caption")

	commenter := env.registerAndLogin(t, "commenter@test.com", "commenter")

	r := NewCommentReactor(env.comments, env.notifications, post)
	defer r.Close()

	r.Dispatch(CommentUpload{Text: "nice shot"})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Comments) == 1 }, waitFor, tick)

	state := r.CurrentState()
	assert.False(t, state.IsLoading)
	appended := state.Comments[0]
	assert.Equal(t, commenter.UID, appended.UID)
	assert.Equal(t, "nice shot", appended.Text)

	// 帖主收到评论通知
	ctx := context.Background()
	docs, err := env.docs.List(ctx, store.UserNotificationsPath(owner.UID))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	n, err := model.ParseNotification(docs[0].Fields)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationComment, n.Type)
	assert.Equal(t, commenter.UID, n.UID)
	assert.Equal(t, post.PostID, n.PostID)
}

// TestCommentOnOwnPostSuppressesNotification 测试给自己的帖子评论不产生通知
func TestCommentOnOwnPostSuppressesNotification(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerAndLogin(t, "self@test.com", "selfuser")
	post := env.seedPost(t, "caption")

	r := NewCommentReactor(env.comments, env.notifications, post)
	defer r.Close()

	r.Dispatch(CommentUpload{Text: "my own post"})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Comments) == 1 }, waitFor, tick)

	docs, err := env.docs.List(context.Background(), store.UserNotificationsPath(owner.UID))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// TestCommentUploadWithoutSessionSetsError 测试未登录时上传失败且不追加
func TestCommentUploadWithoutSessionSetsError(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "gone@test.com", "goneuser")
	post := env.seedPost(t, "caption")
	env.sess.Clear()

	r := NewCommentReactor(env.comments, env.notifications, post)
	defer r.Close()

	r.Dispatch(CommentUpload{Text: "ignored"})
	assert.Eventually(t, func() bool { return r.CurrentState().ErrorMessage != "" }, waitFor, tick)
	assert.Empty(t, r.CurrentState().Comments)
	assert.False(t, r.CurrentState().IsLoading)
}

type stubCommentService struct {
	service.CommentServiceInterface
	fetch func(ctx context.Context, postID string) ([]*model.Comment, error)
}

func (s *stubCommentService) FetchComments(ctx context.Context, postID string) ([]*model.Comment, error) {
	return s.fetch(ctx, postID)
}

type stubNotificationService struct {
	service.NotificationServiceInterface
}

func (*stubNotificationService) Upload(ctx context.Context, toUID string, typ model.NotificationType, post *model.Post) error {
	return nil
}
