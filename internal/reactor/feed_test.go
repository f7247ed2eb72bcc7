package reactor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// stubPostService 允许按用例覆盖个别方法
type stubPostService struct {
	service.PostServiceInterface
	fetchPosts func(ctx context.Context) ([]*model.Post, error)
	didLike    func(ctx context.Context, postID string) (bool, error)
}

func (s *stubPostService) FetchPosts(ctx context.Context) ([]*model.Post, error) {
	return s.fetchPosts(ctx)
}

func (s *stubPostService) DidLike(ctx context.Context, postID string) (bool, error) {
	return s.didLike(ctx, postID)
}

// TestFeedFetchPosts 测试信息流按时间倒序拉取
func TestFeedFetchPosts(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "feed@test.com", "feeduser")
	first := env.seedPost(t, "first")
	second := env.seedPost(t, "second")

	r := NewFeedReactor(env.posts)
	defer r.Close()
	assert.Empty(t, r.CurrentState().Posts)

	r.Dispatch(FeedFetchPosts{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Posts) == 2 }, waitFor, tick)

	posts := r.CurrentState().Posts
	assert.Equal(t, second.PostID, posts[0].PostID)
	assert.Equal(t, first.PostID, posts[1].PostID)
}

// TestFeedPinnedMode 测试置顶模式只重发传入的单个帖子
func TestFeedPinnedMode(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "pin@test.com", "pinuser")
	env.seedPost(t, "other")
	pinned := env.seedPost(t, "pinned")

	r := NewPinnedFeedReactor(env.posts, pinned)
	defer r.Close()

	r.Dispatch(FeedFetchPosts{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Posts) == 1 }, waitFor, tick)
	assert.Equal(t, pinned.PostID, r.CurrentState().Posts[0].PostID)
}

// TestFeedLikeCheckOutOfOrder 测试点赞查询乱序完成时仍按帖子ID正确落位
func TestFeedLikeCheckOutOfOrder(t *testing.T) {
	posts := []*model.Post{
		{PostID: "p1", Timestamp: time.Now()},
		{PostID: "p2", Timestamp: time.Now()},
		{PostID: "p3", Timestamp: time.Now()},
	}
	liked := map[string]bool{"p1": true, "p2": false, "p3": true}
	// p3 最先返回，p2 最后返回
	delays := map[string]time.Duration{"p1": 30 * time.Millisecond, "p2": 60 * time.Millisecond, "p3": 0}

	svc := &stubPostService{
		fetchPosts: func(ctx context.Context) ([]*model.Post, error) { return posts, nil },
		didLike: func(ctx context.Context, postID string) (bool, error) {
			time.Sleep(delays[postID])
			return liked[postID], nil
		},
	}

	r := NewFeedReactor(svc)
	defer r.Close()

	r.Dispatch(FeedFetchPosts{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Posts) == 3 }, waitFor, tick)

	r.Dispatch(FeedCheckIfUserLikedPosts{})
	assert.Eventually(t, func() bool {
		for _, p := range r.CurrentState().Posts {
			if p.DidLike != liked[p.PostID] {
				return false
			}
		}
		return true
	}, waitFor, tick)
}

// TestFeedLikeCheckWithoutSession 测试未登录时点赞查询一律按未点赞处理
func TestFeedLikeCheckWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "owner@test.com", "owner")
	env.seedPost(t, "post")
	env.sess.Clear()

	r := NewFeedReactor(env.posts)
	defer r.Close()

	r.Dispatch(FeedFetchPosts{})
	assert.Eventually(t, func() bool { return len(r.CurrentState().Posts) == 1 }, waitFor, tick)

	r.Dispatch(FeedCheckIfUserLikedPosts{})
	assert.Never(t, func() bool { return r.CurrentState().Posts[0].DidLike }, 100*tick, tick)
}
