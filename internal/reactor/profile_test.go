package reactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// TestProfileIndependentFetches 测试三个互不依赖的拉取更新各自字段，
// 完成顺序任意
func TestProfileIndependentFetches(t *testing.T) {
	env := newTestEnv(t)
	viewed := env.registerAndLogin(t, "viewed@test.com", "viewed")
	env.seedPost(t, "one")
	env.seedPost(t, "two")

	viewer := env.registerAndLogin(t, "viewer@test.com", "viewer")
	require.NoError(t, env.users.Follow(context.Background(), viewed.UID))
	_ = viewer

	r := NewProfileReactor(env.users, env.posts, env.notifications, viewed)
	defer r.Close()

	r.Dispatch(ProfileFetchUserStats{})
	r.Dispatch(ProfileFetchPosts{})
	r.Dispatch(ProfileCheckIfFollowed{})

	assert.Eventually(t, func() bool {
		s := r.CurrentState()
		return s.User.IsFollowed && len(s.Posts) == 2 && s.User.Stats.Posts == 2 && s.User.Stats.Followers == 1
	}, waitFor, tick)
}

// TestProfileFollowEmitsNotification 测试关注成功后翻转标记并向对方投递通知
func TestProfileFollowEmitsNotification(t *testing.T) {
	env := newTestEnv(t)
	viewed := env.registerAndLogin(t, "target@test.com", "target")
	actor := env.registerAndLogin(t, "actor@test.com", "actor")

	r := NewProfileReactor(env.users, env.posts, env.notifications, viewed)
	defer r.Close()

	r.Dispatch(ProfileFollow{})
	assert.Eventually(t, func() bool { return r.CurrentState().User.IsFollowed }, waitFor, tick)

	docs, err := env.docs.List(context.Background(), store.UserNotificationsPath(viewed.UID))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	n, err := model.ParseNotification(docs[0].Fields)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationFollow, n.Type)
	assert.Equal(t, actor.UID, n.UID)
	assert.Empty(t, n.PostID)
}

// TestProfileFollowSelfProducesNoNotification 测试浏览自己的主页时关注
// 动作不会给自己投递通知
func TestProfileFollowSelfProducesNoNotification(t *testing.T) {
	env := newTestEnv(t)
	self := env.registerAndLogin(t, "me@test.com", "me")

	r := NewProfileReactor(env.users, env.posts, env.notifications, self)
	defer r.Close()

	r.Dispatch(ProfileFollow{})
	assert.Eventually(t, func() bool { return r.CurrentState().User.IsFollowed }, waitFor, tick)

	docs, err := env.docs.List(context.Background(), store.UserNotificationsPath(self.UID))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// TestProfileUnfollowRemovesBothEdges 测试先关注再取关后两侧都无残留记录
func TestProfileUnfollowRemovesBothEdges(t *testing.T) {
	env := newTestEnv(t)
	viewed := env.registerAndLogin(t, "a@test.com", "usera")
	actor := env.registerAndLogin(t, "b@test.com", "userb")

	r := NewProfileReactor(env.users, env.posts, env.notifications, viewed)
	defer r.Close()

	r.Dispatch(ProfileFollow{})
	assert.Eventually(t, func() bool { return r.CurrentState().User.IsFollowed }, waitFor, tick)

	r.Dispatch(ProfileUnfollow{})
	assert.Eventually(t, func() bool { return !r.CurrentState().User.IsFollowed }, waitFor, tick)

	ctx := context.Background()
	following, err := env.docs.Exists(ctx, store.UserFollowingPath(actor.UID), viewed.UID)
	require.NoError(t, err)
	followers, err := env.docs.Exists(ctx, store.UserFollowersPath(viewed.UID), actor.UID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, followers)
}
