package reactor

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// ProfileAction 为个人主页的外部意图
type ProfileAction interface{ profileAction() }

type ProfileCheckIfFollowed struct{}
type ProfileFollow struct{}
type ProfileUnfollow struct{}
type ProfileFetchUserStats struct{}
type ProfileFetchPosts struct{}

func (ProfileCheckIfFollowed) profileAction() {}
func (ProfileFollow) profileAction()          {}
func (ProfileUnfollow) profileAction()        {}
func (ProfileFetchUserStats) profileAction()  {}
func (ProfileFetchPosts) profileAction()      {}

type profileMutation interface{ profileMutation() }

type profileSetFollowed struct{ followed bool }
type profileSetUserStats struct{ stats model.UserStats }
type profileSetPosts struct{ posts []*model.Post }
type profileSetError struct{ message string }

func (profileSetFollowed) profileMutation()  {}
func (profileSetUserStats) profileMutation() {}
func (profileSetPosts) profileMutation()     {}
func (profileSetError) profileMutation()     {}

// ProfileState 为个人主页状态。三个拉取动作更新互不重叠的字段，
// 完成顺序任意。
type ProfileState struct {
	User         model.User
	Posts        []*model.Post
	ErrorMessage string
}

// ProfileReactor 驱动个人主页
type ProfileReactor struct {
	*Container[ProfileAction, profileMutation, ProfileState]
	users         service.UserServiceInterface
	posts         service.PostServiceInterface
	notifications service.NotificationServiceInterface
}

// NewProfileReactor 创建个人主页容器，user 为被浏览的用户
func NewProfileReactor(users service.UserServiceInterface, posts service.PostServiceInterface, notifications service.NotificationServiceInterface, user *model.User) *ProfileReactor {
	r := &ProfileReactor{users: users, posts: posts, notifications: notifications}
	r.Container = NewContainer(ProfileState{User: *user}, r.mutate, reduceProfile)
	return r
}

func (r *ProfileReactor) mutate(ctx context.Context, action ProfileAction, emit func(profileMutation)) {
	uid := r.CurrentState().User.UID

	switch action.(type) {
	case ProfileCheckIfFollowed:
		followed, err := r.users.IsFollowed(ctx, uid)
		if err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		emit(profileSetFollowed{followed})
	case ProfileFollow:
		if err := r.users.Follow(ctx, uid); err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		// 关注成功后向对方投递通知，给自己投递由服务静默跳过
		if err := r.notifications.Upload(ctx, uid, model.NotificationFollow, nil); err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		emit(profileSetFollowed{true})
	case ProfileUnfollow:
		if err := r.users.Unfollow(ctx, uid); err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		emit(profileSetFollowed{false})
	case ProfileFetchUserStats:
		stats, err := r.users.FetchUserStats(ctx, uid)
		if err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		emit(profileSetUserStats{stats})
	case ProfileFetchPosts:
		posts, err := r.posts.FetchPostsForUser(ctx, uid)
		if err != nil {
			emit(profileSetError{errors.UserMessage(err)})
			return
		}
		emit(profileSetPosts{posts})
	}
}

func reduceProfile(state ProfileState, mutation profileMutation) ProfileState {
	switch m := mutation.(type) {
	case profileSetFollowed:
		state.User.IsFollowed = m.followed
	case profileSetUserStats:
		state.User.Stats = m.stats
	case profileSetPosts:
		state.Posts = m.posts
	case profileSetError:
		state.ErrorMessage = m.message
	}
	return state
}
